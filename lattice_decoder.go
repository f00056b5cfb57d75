package wordseg

import "math"

// LatticeDecoder finds the segmentation maximizing the product of word
// bigram probabilities along a path through the lattice.
type LatticeDecoder struct {
	model *StatisticsModel
}

// NewLatticeDecoder creates a decoder for model, normalizing it first if
// this has not been done yet.
func NewLatticeDecoder(model *StatisticsModel) *LatticeDecoder {
	assert(model != nil, "lattice decoder needs a model")
	model.Normalize()
	return &LatticeDecoder{model: model}
}

// decodeScratch is the per-call state of the dynamic program.
type decodeScratch struct {
	score []float64 // best log score reaching a vertex
	prev  []int     // predecessor vertex on the best path
	word  []WordID  // word of the edge entering a vertex on the best path
	seen  []bool    // has a path reached the vertex yet?
}

func newDecodeScratch(n int) *decodeScratch {
	return &decodeScratch{
		score: make([]float64, n+1),
		prev:  make([]int, n+1),
		word:  make([]WordID, n+1),
		seen:  make([]bool, n+1),
	}
}

// Segment is part of interface Segmenter.
func (d *LatticeDecoder) Segment(syllables []string) Boundaries {
	return d.Decode(syllables).Boundaries
}

// Decode segments syllables.
//
// Vertices are processed in ascending order, their outgoing edges in
// ascending order of end position. A vertex record is replaced only by a
// strictly better score, so among equally scored paths the one discovered
// first wins. Bigrams which the model has not seen are scored with the
// model's fallback probability. Scores are kept as log probabilities.
func (d *LatticeDecoder) Decode(syllables []string) Segmentation {
	n := len(syllables)
	if n == 0 {
		return Segmentation{}
	}
	lat := BuildLattice(syllables, d.model.Vocabulary())
	dp := newDecodeScratch(n)
	dp.seen[0] = true
	dp.word[0] = BOS
	logFallback := math.Log(d.model.FallbackProb())
	for i := 0; i < n; i++ {
		assert(dp.seen[i], "lattice vertex not reachable")
		for _, e := range lat.Out(i) {
			logp := logFallback
			if p := d.model.BigramProb(dp.word[i], e.Word); p != 0 {
				logp = math.Log(p)
			}
			score := dp.score[i] + logp
			if !dp.seen[e.To] || score > dp.score[e.To] {
				dp.seen[e.To] = true
				dp.score[e.To] = score
				dp.prev[e.To] = i
				dp.word[e.To] = e.Word
			}
		}
	}
	return backtrack(dp, syllables)
}

// backtrack follows the predecessor links from the final vertex and returns
// the segmentation in left-to-right order.
func backtrack(dp *decodeScratch, syllables []string) Segmentation {
	n := len(syllables)
	seg := Segmentation{Boundaries: make(Boundaries, n-1)}
	var spans []Span
	for j := n; j != 0; j = dp.prev[j] {
		if j != n {
			seg.Boundaries[j-1] = true
		}
		spans = append(spans, Span{Start: dp.prev[j], End: j})
	}
	seg.Words = make([]string, len(spans))
	for k, sp := range spans {
		seg.Words[len(spans)-1-k] = sp.Join(syllables)
	}
	tracer().Debugf("decoded %d syllables into %d words, log score %.4f", n, len(spans), dp.score[n])
	return seg
}
