package wordseg

import (
	"errors"
	"io"
	"strings"
)

// ErrMalformedRecord is reported by a SentenceReader for a single corpus
// record which cannot be interpreted. Consumers skip the record and continue.
var ErrMalformedRecord = errors.New("malformed corpus record")

// ErrModelFrozen is returned when counts are added to a normalized model.
var ErrModelFrozen = errors.New("model is normalized and read-only")

// Boundaries is a boundary vector for a sequence of n syllables. It has
// length n-1, and Boundaries[i] is true iff a word ends after syllable i.
type Boundaries []bool

// Tag is a per-syllable BI-tag.
type Tag uint8

// Tags, in the stable order used for enumeration.
const (
	Begin  Tag = iota // syllable starts a new word
	Inside            // syllable continues the current word
)

func (t Tag) String() string {
	if t == Begin {
		return "B"
	}
	return "I"
}

// Tags converts a boundary vector into BI-tags for len(b)+1 syllables.
func (b Boundaries) Tags() []Tag {
	tags := make([]Tag, len(b)+1)
	tags[0] = Begin
	for i, boundary := range b {
		if boundary {
			tags[i+1] = Begin
		} else {
			tags[i+1] = Inside
		}
	}
	return tags
}

// BoundariesFromTags converts BI-tags back into a boundary vector. The tag of
// the first syllable does not influence the result.
func BoundariesFromTags(tags []Tag) Boundaries {
	if len(tags) == 0 {
		return nil
	}
	b := make(Boundaries, len(tags)-1)
	for i := 1; i < len(tags); i++ {
		b[i-1] = tags[i] == Begin
	}
	return b
}

// Spans returns the words of a segmentation as half-open syllable ranges.
func (b Boundaries) Spans() []Span {
	spans := make([]Span, 0, len(b)/2+1)
	start := 0
	for i, boundary := range b {
		if boundary {
			spans = append(spans, Span{Start: start, End: i + 1})
			start = i + 1
		}
	}
	return append(spans, Span{Start: start, End: len(b) + 1})
}

// Words joins syllables into space-separated words along b.
func (b Boundaries) Words(syllables []string) []string {
	if len(syllables) == 0 {
		return nil
	}
	assert(len(b) == len(syllables)-1, "boundary vector does not match syllables")
	spans := b.Spans()
	words := make([]string, len(spans))
	for i, sp := range spans {
		words[i] = sp.Join(syllables)
	}
	return words
}

func (b Boundaries) String() string {
	var sb strings.Builder
	for _, boundary := range b {
		if boundary {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Span is a half-open range [Start, End) of syllable positions.
type Span struct {
	Start, End int
}

// Len is the number of syllables covered by sp.
func (sp Span) Len() int { return sp.End - sp.Start }

// Join returns the canonical word string for sp.
func (sp Span) Join(syllables []string) string {
	return strings.Join(syllables[sp.Start:sp.End], " ")
}

// Sentence is a syllable sequence together with its gold segmentation.
type Sentence struct {
	Syllables  []string
	Boundaries Boundaries
}

// Words returns the gold words of s.
func (s Sentence) Words() []string {
	return s.Boundaries.Words(s.Syllables)
}

// SentenceReader yields sentences one-by-one.
// It should return io.EOF when the stream is exhausted, and an error
// wrapping ErrMalformedRecord for a record which has to be skipped.
type SentenceReader interface {
	Next() (Sentence, error)
}

// Segmenter is the common contract of all decoders.
type Segmenter interface {
	Segment(syllables []string) Boundaries
}

// Learner is implemented by segmenters which adapt to gold data seen during
// evaluation.
type Learner interface {
	Learn(gold Sentence)
}

// Segmentation is the result of decoding a sentence.
type Segmentation struct {
	Boundaries Boundaries
	Words      []string
}

// SliceReader is a SentenceReader over an in-memory slice.
type SliceReader struct {
	sentences []Sentence
	index     int
}

// NewSliceReader creates a reader for sentences.
func NewSliceReader(sentences []Sentence) *SliceReader {
	return &SliceReader{sentences: sentences}
}

// Next is part of interface SentenceReader.
func (r *SliceReader) Next() (Sentence, error) {
	if r.index >= len(r.sentences) {
		return Sentence{}, io.EOF
	}
	s := r.sentences[r.index]
	r.index++
	return s, nil
}

// ReadAll drains r, skipping malformed records.
func ReadAll(r SentenceReader) ([]Sentence, error) {
	var sentences []Sentence
	err := forEachSentence(r, func(s Sentence) error {
		sentences = append(sentences, s)
		return nil
	})
	return sentences, err
}

// forEachSentence calls fn for every well-formed sentence of r. Malformed
// records are traced and skipped.
func forEachSentence(r SentenceReader, fn func(Sentence) error) error {
	skipped := 0
	for {
		s, err := r.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, ErrMalformedRecord) {
			skipped++
			tracer().Debugf("skipping record: %v", err)
			continue
		}
		if err != nil {
			return err
		}
		if err = fn(s); err != nil {
			return err
		}
	}
	if skipped > 0 {
		tracer().Infof("skipped %d malformed records", skipped)
	}
	return nil
}
