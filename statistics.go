package wordseg

import (
	"errors"
	"fmt"
)

type bigram [2]WordID

// StatisticsModel holds unigram and bigram statistics over words.
//
// Counts are accumulated from segmented sentences with AddSentence or Train.
// Normalize converts them to probabilities and freezes the model; from then
// on it is read-only and may be shared between decoders.
type StatisticsModel struct {
	vocab         *Vocabulary
	normalization Normalization
	unigramCounts map[WordID]int
	bigramCounts  map[bigram]int
	unigrams      map[WordID]float64
	bigrams       map[bigram]float64
	fallback      float64
	normalized    bool
}

// NewStatisticsModel creates an empty model.
func NewStatisticsModel(normalization Normalization) *StatisticsModel {
	return &StatisticsModel{
		vocab:         NewVocabulary(),
		normalization: normalization,
		unigramCounts: make(map[WordID]int),
		bigramCounts:  make(map[bigram]int),
	}
}

// Train reads segmented sentences from r, normalizes the counts and
// returns the read-only model. Malformed records are skipped.
func Train(r SentenceReader, opts Options) (*StatisticsModel, error) {
	m := NewStatisticsModel(opts.Normalization)
	sentences := 0
	err := forEachSentence(r, func(s Sentence) error {
		if err := m.AddSentence(s); errors.Is(err, ErrMalformedRecord) {
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
	m.Normalize()
	tracer().Infof("trained statistics model on %d sentences: %d words, %d bigrams",
		sentences, m.vocab.Size(), len(m.bigrams))
	return m, nil
}

// AddSentence counts the words of a segmented sentence, including the
// bigrams from BOS to the first word and from the last word to EOS.
func (m *StatisticsModel) AddSentence(s Sentence) error {
	if m.normalized {
		return ErrModelFrozen
	}
	if len(s.Syllables) == 0 {
		return nil
	}
	if len(s.Boundaries) != len(s.Syllables)-1 {
		return fmt.Errorf("%w: %d boundaries for %d syllables", ErrMalformedRecord,
			len(s.Boundaries), len(s.Syllables))
	}
	prev := BOS
	for _, sp := range s.Boundaries.Spans() {
		id, err := m.vocab.AddSpan(s.Syllables, sp)
		if err != nil {
			return err
		}
		m.unigramCounts[id]++
		m.bigramCounts[bigram{prev, id}]++
		prev = id
	}
	m.bigramCounts[bigram{prev, EOS}]++
	return nil
}

// Normalize converts counts to probabilities and freezes the model.
//
// Unigram counts are divided by the total unigram count. Bigram counts are
// divided either by the grand total of all bigram counts (NormalizeTotalMass)
// or by the total count of bigrams sharing the first word
// (NormalizeConditional). Calling Normalize a second time has no effect.
func (m *StatisticsModel) Normalize() {
	if m.normalized {
		return
	}
	m.unigrams = make(map[WordID]float64, len(m.unigramCounts))
	total := 0
	for _, c := range m.unigramCounts {
		total += c
	}
	for w, c := range m.unigramCounts {
		m.unigrams[w] = float64(c) / float64(total)
	}
	m.bigrams = make(map[bigram]float64, len(m.bigramCounts))
	switch m.normalization {
	case NormalizeConditional:
		history := make(map[WordID]int)
		for key, c := range m.bigramCounts {
			history[key[0]] += c
		}
		for key, c := range m.bigramCounts {
			m.bigrams[key] = float64(c) / float64(history[key[0]])
		}
	default:
		total = 0
		for _, c := range m.bigramCounts {
			total += c
		}
		for key, c := range m.bigramCounts {
			m.bigrams[key] = float64(c) / float64(total)
		}
	}
	mass := 0.0
	for _, p := range m.bigrams {
		mass += p
	}
	m.fallback = 1
	if mass > 0 {
		m.fallback = 1 / mass
	}
	m.vocab.Freeze()
	m.normalized = true
	tracer().Debugf("normalized model (%s): bigram mass=%.6f fallback=%.6f",
		m.normalization, mass, m.fallback)
}

// Normalized is a predicate: has Normalize been called?
func (m *StatisticsModel) Normalized() bool {
	return m.normalized
}

// Vocabulary returns the words seen in training.
func (m *StatisticsModel) Vocabulary() *Vocabulary {
	return m.vocab
}

// UnigramProb returns the probability of w, or 0 for an unseen word.
func (m *StatisticsModel) UnigramProb(w WordID) float64 {
	return m.unigrams[w]
}

// BigramProb returns the probability of the pair (prev, next), or 0 for an
// unseen pair. Callers substitute FallbackProb where appropriate.
func (m *StatisticsModel) BigramProb(prev, next WordID) float64 {
	return m.bigrams[bigram{prev, next}]
}

// WordProb returns the unigram probability of a word given as a string.
func (m *StatisticsModel) WordProb(word string) float64 {
	id, ok := m.vocab.ID(word)
	if !ok {
		return 0
	}
	return m.unigrams[id]
}

// FallbackProb is the substitute for an unseen bigram: one over the total
// probability mass of the stored bigrams.
func (m *StatisticsModel) FallbackProb() float64 {
	return m.fallback
}

// UnigramMass returns the sum of all stored unigram probabilities.
func (m *StatisticsModel) UnigramMass() float64 {
	sum := 0.0
	for _, p := range m.unigrams {
		sum += p
	}
	return sum
}

// BigramMass returns the sum of all stored bigram probabilities.
func (m *StatisticsModel) BigramMass() float64 {
	sum := 0.0
	for _, p := range m.bigrams {
		sum += p
	}
	return sum
}
