package wordseg

import (
	"errors"
	"fmt"
	"math"
)

const numTags = 2

// tagOrder is the enumeration order of hidden states. Viterbi ties are
// resolved in favour of the state enumerated last, i.e., Inside.
var tagOrder = [numTags]Tag{Begin, Inside}

// HMMParams are the parameters of a hidden Markov model over BI-tags.
//
// A row of A sums to 1, or to 0 for a tag which was never seen followed by
// another tag. A row of Emissions sums to 1 over the tags observed for that
// syllable. Unseen syllables have no row and emit with probability 0.
type HMMParams struct {
	Pi        [numTags]float64          // initial tag distribution
	A         [numTags][numTags]float64 // A[from][to]
	Emissions map[string][numTags]float64

	transitionCounts [numTags][numTags]int
	emissionCounts   map[string][numTags]int
	normalized       bool
}

// NewHMMParams creates empty parameters. Every sentence starts with a Begin
// tag, so Pi is fixed to (1, 0).
func NewHMMParams() *HMMParams {
	return &HMMParams{
		Pi:             [numTags]float64{Begin: 1, Inside: 0},
		Emissions:      make(map[string][numTags]float64),
		emissionCounts: make(map[string][numTags]int),
	}
}

// TrainHMM estimates HMM parameters from segmented sentences. Malformed
// records are skipped.
func TrainHMM(r SentenceReader) (*HMMParams, error) {
	h := NewHMMParams()
	sentences := 0
	err := forEachSentence(r, func(s Sentence) error {
		if err := h.AddSentence(s); errors.Is(err, ErrMalformedRecord) {
			tracer().Infof("skipping sentence: %v", err)
			return nil
		} else if err != nil {
			return err
		}
		sentences++
		return nil
	})
	if err != nil {
		return nil, err
	}
	h.Normalize()
	tracer().Infof("trained HMM on %d sentences: %d syllables", sentences, len(h.Emissions))
	return h, nil
}

// AddSentence counts tag transitions and syllable emissions of a segmented
// sentence.
func (h *HMMParams) AddSentence(s Sentence) error {
	if h.normalized {
		return ErrModelFrozen
	}
	if len(s.Syllables) == 0 {
		return nil
	}
	if len(s.Boundaries) != len(s.Syllables)-1 {
		return fmt.Errorf("%w: %d boundaries for %d syllables", ErrMalformedRecord,
			len(s.Boundaries), len(s.Syllables))
	}
	tags := s.Boundaries.Tags()
	for i := 0; i+1 < len(tags); i++ {
		h.transitionCounts[tags[i]][tags[i+1]]++
	}
	for i, syl := range s.Syllables {
		c := h.emissionCounts[syl]
		c[tags[i]]++
		h.emissionCounts[syl] = c
	}
	return nil
}

// Normalize turns the counts into transition and emission probabilities.
func (h *HMMParams) Normalize() {
	if h.normalized {
		return
	}
	for from := range h.transitionCounts {
		sum := 0
		for _, c := range h.transitionCounts[from] {
			sum += c
		}
		if sum == 0 {
			continue // tag never seen transitioning, row stays 0
		}
		for to, c := range h.transitionCounts[from] {
			h.A[from][to] = float64(c) / float64(sum)
		}
	}
	for syl, counts := range h.emissionCounts {
		sum := counts[Begin] + counts[Inside]
		var row [numTags]float64
		for t, c := range counts {
			row[t] = float64(c) / float64(sum)
		}
		h.Emissions[syl] = row
	}
	h.normalized = true
}

// Emission returns B[syllable][t], or 0 for an unseen syllable.
func (h *HMMParams) Emission(syllable string, t Tag) float64 {
	return h.Emissions[syllable][t]
}

// SetEmission sets the emission probabilities of a syllable.
func (h *HMMParams) SetEmission(syllable string, begin, inside float64) {
	h.Emissions[syllable] = [numTags]float64{Begin: begin, Inside: inside}
}

// HMMDecoder posits BI-tags for syllables with the Viterbi algorithm.
//
// In leak mode, Learn adds the tags of gold sentences to the emission table
// while evaluating. Such a decoder must not be shared between goroutines.
type HMMDecoder struct {
	params *HMMParams
	leak   bool
}

// NewHMMDecoder creates a decoder for params. opts.HMMEmissionLeak
// switches on leak mode.
func NewHMMDecoder(params *HMMParams, opts Options) *HMMDecoder {
	assert(params != nil, "HMM decoder needs parameters")
	params.Normalize()
	return &HMMDecoder{params: params, leak: opts.HMMEmissionLeak}
}

// Segment is part of interface Segmenter.
func (d *HMMDecoder) Segment(syllables []string) Boundaries {
	return BoundariesFromTags(d.Decode(syllables))
}

// Decode returns the most probable tag sequence for syllables.
//
// States are enumerated in the order Begin, Inside; a later state replaces
// the best predecessor (or the best final state) if it scores at least as
// high. There is no smoothing: an unseen syllable has probability 0 for
// every state, and from there on all paths tie and run through Inside.
func (d *HMMDecoder) Decode(syllables []string) []Tag {
	T := len(syllables)
	if T == 0 {
		return nil
	}
	p := d.params
	logA := [numTags][numTags]float64{}
	for _, from := range tagOrder {
		for _, to := range tagOrder {
			logA[from][to] = math.Log(p.A[from][to])
		}
	}
	viterbi := make([][numTags]float64, T)
	backpointer := make([][numTags]Tag, T)
	for _, s := range tagOrder {
		viterbi[0][s] = math.Log(p.Pi[s]) + math.Log(p.Emission(syllables[0], s))
	}
	for t := 1; t < T; t++ {
		for _, s := range tagOrder {
			emit := math.Log(p.Emission(syllables[t], s))
			best, arg := math.Inf(-1), tagOrder[0]
			for _, s0 := range tagOrder {
				score := viterbi[t-1][s0] + logA[s0][s] + emit
				if score >= best {
					best, arg = score, s0
				}
			}
			viterbi[t][s] = best
			backpointer[t][s] = arg
		}
	}
	last := tagOrder[0]
	for _, s := range tagOrder[1:] {
		if viterbi[T-1][s] >= viterbi[T-1][last] {
			last = s
		}
	}
	tags := make([]Tag, T)
	for t := T - 1; t >= 0; t-- {
		tags[t] = last
		last = backpointer[t][last]
	}
	tracer().Debugf("viterbi: %d syllables, best log prob %.4f", T, viterbi[T-1][tags[T-1]])
	return tags
}

// Learn is part of interface Learner. In leak mode it adds 1 to the emission
// entry of every syllable of gold for its gold tag. The entries are
// probabilities already, so the rows no longer sum to 1 afterwards.
// Outside of leak mode Learn does nothing. Malformed sentences are skipped.
func (d *HMMDecoder) Learn(gold Sentence) {
	if !d.leak || len(gold.Syllables) == 0 {
		return
	}
	if len(gold.Boundaries) != len(gold.Syllables)-1 {
		tracer().Infof("not learning from sentence: %d boundaries for %d syllables",
			len(gold.Boundaries), len(gold.Syllables))
		return
	}
	tags := gold.Boundaries.Tags()
	for i, syl := range gold.Syllables {
		row := d.params.Emissions[syl]
		row[tags[i]]++
		d.params.Emissions[syl] = row
	}
}
