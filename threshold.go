package wordseg

import (
	"fmt"
	"io"
)

// DefaultLoners returns the built-in list of Vietnamese function words which
// are always treated as single-syllable words by the threshold decoder.
func DefaultLoners() []string {
	return []string{
		"và", "của", "có", "là", "trong", "các", "với", "được",
		"cho", "không", "đã", "người", "một", "công", "để", "năm",
		"khi", "những", "này", "đến", "ở", "đó", "từ", "tại",
		"nhiều", "cũng", "sẽ", "về", "vào", "ra", "nhà", "trên",
	}
}

// transitionScale rescales relative pair frequencies to per-million values.
const transitionScale = 1e6

// SyllableReader yields unlabeled sentences as syllable slices.
// It should return io.EOF when the stream is exhausted.
type SyllableReader interface {
	Next() ([]string, error)
}

type syllablePair [2]string

// TransitionTable counts adjacent syllable pairs of unlabeled text.
type TransitionTable struct {
	pairs       map[syllablePair]int
	frequencies map[string]int
	total       int
}

// NewTransitionTable creates an empty table.
func NewTransitionTable() *TransitionTable {
	return &TransitionTable{
		pairs:       make(map[syllablePair]int),
		frequencies: make(map[string]int),
	}
}

// BuildTransitionTable counts the syllable pairs of every sentence of r.
func BuildTransitionTable(r SyllableReader) (*TransitionTable, error) {
	t := NewTransitionTable()
	sentences := 0
	for {
		syllables, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("building transition table: %w", err)
		}
		t.AddSyllables(syllables)
		sentences++
	}
	tracer().Infof("transition table from %d sentences: %d syllables, %d distinct pairs, %d pairs total",
		sentences, len(t.frequencies), len(t.pairs), t.total)
	return t, nil
}

// AddSyllables counts the syllables of one sentence and its adjacent pairs.
func (t *TransitionTable) AddSyllables(syllables []string) {
	for i, syl := range syllables {
		t.frequencies[syl]++
		if i > 0 {
			t.pairs[syllablePair{syllables[i-1], syl}]++
			t.total++
		}
	}
}

// Value returns 1e6 times the relative frequency of the pair (a, b) among
// all counted pairs. Unseen pairs have value 0.
func (t *TransitionTable) Value(a, b string) float64 {
	c := t.pairs[syllablePair{a, b}]
	if c == 0 {
		return 0
	}
	return transitionScale * float64(c) / float64(t.total)
}

// Frequency returns how often syllable has been counted.
func (t *TransitionTable) Frequency(syllable string) int {
	return t.frequencies[syllable]
}

// Pairs returns the number of distinct pairs and the total pair count.
func (t *TransitionTable) Pairs() (distinct, total int) {
	return len(t.pairs), t.total
}

type lonerSet map[string]struct{}

func newLonerSet(loners []string) lonerSet {
	set := make(lonerSet, len(loners))
	for _, l := range loners {
		set[l] = struct{}{}
	}
	return set
}

func (s lonerSet) contains(syllable string) bool {
	_, ok := s[syllable]
	return ok
}

// ThresholdDecoder places a boundary between two syllables if they are
// rarely seen together, or if one of them is a loner.
type ThresholdDecoder struct {
	table     *TransitionTable
	threshold int
	loners    lonerSet
}

// NewThresholdDecoder creates a decoder for table.
func NewThresholdDecoder(table *TransitionTable, threshold int, loners []string) *ThresholdDecoder {
	assert(table != nil, "threshold decoder needs a transition table")
	return &ThresholdDecoder{
		table:     table,
		threshold: threshold,
		loners:    newLonerSet(loners),
	}
}

// Threshold returns the threshold of d.
func (d *ThresholdDecoder) Threshold() int {
	return d.threshold
}

// Segment is part of interface Segmenter.
func (d *ThresholdDecoder) Segment(syllables []string) Boundaries {
	if len(syllables) == 0 {
		return nil
	}
	b := make(Boundaries, len(syllables)-1)
	for i := range b {
		b[i] = d.boundary(syllables[i], syllables[i+1], d.threshold)
	}
	return b
}

func (d *ThresholdDecoder) boundary(a, b string, threshold int) bool {
	return d.table.Value(a, b) < float64(threshold) || d.loners.contains(a) || d.loners.contains(b)
}

// TuneThreshold tries every integer threshold in [lo, hi) on heldOut and
// returns the one with the highest F1. A threshold replaces the current best
// only if its F1 is strictly greater; if no threshold reaches an F1 above 0,
// lo is returned. Sentences whose boundary vector does not match their
// syllables are ignored.
func TuneThreshold(table *TransitionTable, loners []string, heldOut []Sentence, lo, hi int) (int, float64) {
	d := NewThresholdDecoder(table, lo, loners)
	// a candidate boundary is decided by its value alone, unless a loner
	// forces it
	type candidate struct {
		value  float64
		forced bool
		gold   bool
	}
	var candidates []candidate
	for _, s := range heldOut {
		if len(s.Syllables) == 0 || len(s.Boundaries) != len(s.Syllables)-1 {
			continue
		}
		for i, gold := range s.Boundaries {
			a, b := s.Syllables[i], s.Syllables[i+1]
			candidates = append(candidates, candidate{
				value:  table.Value(a, b),
				forced: d.loners.contains(a) || d.loners.contains(b),
				gold:   gold,
			})
		}
	}
	best, bestF1 := lo, 0.0
	for threshold := lo; threshold < hi; threshold++ {
		var c Confusion
		for _, cand := range candidates {
			c.addOne(cand.gold, cand.forced || cand.value < float64(threshold))
		}
		if f1 := c.F1(); f1 > bestF1 {
			best, bestF1 = threshold, f1
		}
	}
	tracer().Infof("tuned threshold on %d boundaries in [%d,%d): threshold=%d F1=%.4f",
		len(candidates), lo, hi, best, bestF1)
	return best, bestF1
}
