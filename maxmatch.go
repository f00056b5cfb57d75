package wordseg

// MaximalMatchDecoder is a dictionary-driven greedy baseline.
type MaximalMatchDecoder struct {
	dict *Vocabulary
}

// NewMaximalMatchDecoder creates a decoder matching against dict.
// dict is frozen if it is not yet.
func NewMaximalMatchDecoder(dict *Vocabulary) *MaximalMatchDecoder {
	assert(dict != nil, "maximal matching needs a dictionary")
	dict.Freeze()
	return &MaximalMatchDecoder{dict: dict}
}

// Segment is part of interface Segmenter.
func (d *MaximalMatchDecoder) Segment(syllables []string) Boundaries {
	return d.Decode(syllables).Boundaries
}

// Decode segments syllables from left to right. The current word grows as
// long as the extended word is a dictionary member; otherwise a boundary is
// placed before the syllable and a new word starts with it. A word is never
// taken back, so a longer dictionary word reachable only through a
// non-member prefix is missed.
func (d *MaximalMatchDecoder) Decode(syllables []string) Segmentation {
	n := len(syllables)
	if n == 0 {
		return Segmentation{}
	}
	seg := Segmentation{Boundaries: make(Boundaries, n-1)}
	w := d.dict.Walker()
	w.Next(syllables[0])
	start := 0
	for i := 1; i < n; i++ {
		if _, ok := w.Next(syllables[i]); ok {
			continue
		}
		seg.Boundaries[i-1] = true
		seg.Words = append(seg.Words, Span{Start: start, End: i}.Join(syllables))
		start = i
		w.Reset()
		w.Next(syllables[i])
	}
	seg.Words = append(seg.Words, Span{Start: start, End: n}.Join(syllables))
	tracer().Debugf("maximal matching: %d syllables into %d words", n, len(seg.Words))
	return seg
}
