package metrics

import "fmt"

// Average selects how per-class scores are combined.
type Average int

const (
	// Macro is the unweighted mean over classes.
	Macro Average = iota
	// Micro pools TP, FP and FN across classes before scoring.
	Micro
	// Weighted is the mean over classes weighted by support.
	Weighted
)

func (a Average) String() string {
	switch a {
	case Macro:
		return "macro"
	case Micro:
		return "micro"
	case Weighted:
		return "weighted"
	default:
		return fmt.Sprintf("Average(%d)", int(a))
	}
}

// ClassScore holds the one-vs-rest result for a single class.
type ClassScore struct {
	Label          int
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Support        int
	Precision      float64
	Recall         float64
	F1             float64
}

// score fills Precision, Recall and F1 from the counts. A zero
// denominator yields 0.
func score(tp, fp, fn int) (precision, recall, f1 float64) {
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if 2*tp+fp+fn > 0 {
		f1 = float64(2*tp) / float64(2*tp+fp+fn)
	}
	return precision, recall, f1
}

// Scores returns per-class results in class order.
func (c *Confusion) Scores() []ClassScore {
	scores := make([]ClassScore, len(c.classes))
	for i, label := range c.classes {
		tp := int(c.diag[i])
		fp := int(c.colSums[i]) - tp
		fn := int(c.rowSums[i]) - tp

		s := ClassScore{
			Label:          label,
			TruePositives:  tp,
			FalsePositives: fp,
			FalseNegatives: fn,
			Support:        int(c.rowSums[i]),
		}
		s.Precision, s.Recall, s.F1 = score(tp, fp, fn)
		scores[i] = s
	}
	return scores
}

// Precision returns precision under the given averaging.
func (c *Confusion) Precision(avg Average) float64 {
	return c.average(avg, func(s ClassScore) float64 { return s.Precision })
}

// Recall returns recall under the given averaging.
func (c *Confusion) Recall(avg Average) float64 {
	return c.average(avg, func(s ClassScore) float64 { return s.Recall })
}

// F1 returns the F1 score under the given averaging.
func (c *Confusion) F1(avg Average) float64 {
	return c.average(avg, func(s ClassScore) float64 { return s.F1 })
}

func (c *Confusion) average(avg Average, pick func(ClassScore) float64) float64 {
	scores := c.Scores()

	switch avg {
	case Micro:
		var pooled ClassScore
		for _, s := range scores {
			pooled.TruePositives += s.TruePositives
			pooled.FalsePositives += s.FalsePositives
			pooled.FalseNegatives += s.FalseNegatives
		}
		pooled.Precision, pooled.Recall, pooled.F1 = score(
			pooled.TruePositives, pooled.FalsePositives, pooled.FalseNegatives)
		return pick(pooled)

	case Weighted:
		var sum, support float64
		for _, s := range scores {
			sum += pick(s) * float64(s.Support)
			support += float64(s.Support)
		}
		if support == 0 {
			return 0
		}
		return sum / support

	default:
		if len(scores) == 0 {
			return 0
		}
		var sum float64
		for _, s := range scores {
			sum += pick(s)
		}
		return sum / float64(len(scores))
	}
}
