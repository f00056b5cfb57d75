package wordseg

import "fmt"

// Confusion counts boundary decisions against a gold standard. A positive is
// a posited boundary.
type Confusion struct {
	TP, FP, TN, FN int
}

// Add compares a posited boundary vector with the gold one.
func (c *Confusion) Add(gold, posited Boundaries) {
	assert(len(gold) == len(posited), "boundary vectors differ in length")
	for i := range gold {
		c.addOne(gold[i], posited[i])
	}
}

func (c *Confusion) addOne(gold, posited bool) {
	switch {
	case gold && posited:
		c.TP++
	case posited:
		c.FP++
	case gold:
		c.FN++
	default:
		c.TN++
	}
}

// Merge adds the counts of other to c.
func (c *Confusion) Merge(other Confusion) {
	c.TP += other.TP
	c.FP += other.FP
	c.TN += other.TN
	c.FN += other.FN
}

// Total is the number of boundary decisions counted.
func (c Confusion) Total() int {
	return c.TP + c.FP + c.TN + c.FN
}

func ratio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

// Accuracy is the share of correct decisions, or 0 if nothing was counted.
func (c Confusion) Accuracy() float64 {
	return ratio(c.TP+c.TN, c.Total())
}

// Precision is TP/(TP+FP), or 0 if no boundary was posited.
func (c Confusion) Precision() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

// Recall is TP/(TP+FN), or 0 if the gold standard has no boundary.
func (c Confusion) Recall() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

// F1 is the harmonic mean of precision and recall, or 0 if both are 0.
func (c Confusion) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (c Confusion) String() string {
	return fmt.Sprintf("accuracy=%.4f precision=%.4f recall=%.4f F1=%.4f (TP=%d FP=%d TN=%d FN=%d)",
		c.Accuracy(), c.Precision(), c.Recall(), c.F1(), c.TP, c.FP, c.TN, c.FN)
}

// Evaluate segments every sentence of r with seg and compares the result
// with the gold boundaries. Malformed records are skipped. If seg is a
// Learner, it is shown each gold sentence after that sentence is scored.
func Evaluate(seg Segmenter, r SentenceReader) (Confusion, error) {
	var c Confusion
	learner, _ := seg.(Learner)
	sentences := 0
	err := forEachSentence(r, func(s Sentence) error {
		if len(s.Syllables) == 0 {
			return nil
		}
		if len(s.Boundaries) != len(s.Syllables)-1 {
			tracer().Infof("skipping sentence: %d boundaries for %d syllables",
				len(s.Boundaries), len(s.Syllables))
			return nil
		}
		c.Add(s.Boundaries, seg.Segment(s.Syllables))
		if learner != nil {
			learner.Learn(s)
		}
		sentences++
		return nil
	})
	if err != nil {
		return c, err
	}
	tracer().Infof("evaluated %d sentences: %s", sentences, c)
	return c, nil
}
