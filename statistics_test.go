package wordseg

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func trainingCorpus() []Sentence {
	return []Sentence{
		sentence("học sinh", "giỏi"),
		sentence("học sinh", "học", "bài"),
		sentence("giỏi"),
		sentence("việt nam", "học sinh", "giỏi"),
	}
}

func TestTotalMassNormalization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wordseg")
	defer teardown()
	//
	model, err := Train(NewSliceReader(trainingCorpus()), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !model.Normalized() || !model.Vocabulary().Frozen() {
		t.Fatalf("expected trained model to be normalized and frozen")
	}
	if m := model.BigramMass(); math.Abs(m-1) > 1e-9 {
		t.Errorf("bigram mass is %.12f, want 1", m)
	}
	if m := model.UnigramMass(); math.Abs(m-1) > 1e-9 {
		t.Errorf("unigram mass is %.12f, want 1", m)
	}
	if f := model.FallbackProb(); math.Abs(f-1) > 1e-9 {
		t.Errorf("fallback is %f, want 1", f)
	}
	// 9 words in 4 sentences; 13 bigrams
	if p := model.WordProb("học sinh"); math.Abs(p-3.0/9) > 1e-9 {
		t.Errorf("P(học sinh) = %f, want 3/9", p)
	}
	hs, _ := model.Vocabulary().ID("học sinh")
	gioi, _ := model.Vocabulary().ID("giỏi")
	if p := model.BigramProb(hs, gioi); math.Abs(p-2.0/13) > 1e-9 {
		t.Errorf("P(học sinh, giỏi) = %f, want 2/13", p)
	}
	if p := model.BigramProb(BOS, gioi); math.Abs(p-1.0/13) > 1e-9 {
		t.Errorf("P(<bos>, giỏi) = %f, want 1/13", p)
	}
	if p := model.BigramProb(gioi, EOS); math.Abs(p-3.0/13) > 1e-9 {
		t.Errorf("P(giỏi, <eos>) = %f, want 3/13", p)
	}
}

func TestUnseenProbabilitiesAreZero(t *testing.T) {
	model, err := Train(NewSliceReader(trainingCorpus()), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if p := model.WordProb("không"); p != 0 {
		t.Errorf("unseen word has probability %f", p)
	}
	gioi, _ := model.Vocabulary().ID("giỏi")
	if p := model.BigramProb(gioi, gioi); p != 0 {
		t.Errorf("unseen bigram has probability %f", p)
	}
	if p := model.UnigramProb(NoWord); p != 0 {
		t.Errorf("NoWord has probability %f", p)
	}
}

func TestConditionalNormalization(t *testing.T) {
	opts := DefaultOptions()
	opts.Normalization = NormalizeConditional
	model, err := Train(NewSliceReader(trainingCorpus()), opts)
	if err != nil {
		t.Fatal(err)
	}
	histories := []WordID{BOS}
	for id := 0; id < model.Vocabulary().Size(); id++ {
		histories = append(histories, WordID(id))
	}
	targets := append([]WordID{EOS}, histories[1:]...)
	for _, h := range histories {
		sum := 0.0
		for _, w := range targets {
			sum += model.BigramProb(h, w)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("conditional distribution after %q sums to %f", model.Vocabulary().Word(h), sum)
		}
	}
	// one history per word plus BOS
	want := 1 / float64(len(histories))
	if f := model.FallbackProb(); math.Abs(f-want) > 1e-9 {
		t.Errorf("fallback is %f, want %f", f, want)
	}
}

func TestAddSentenceAfterNormalize(t *testing.T) {
	model := NewStatisticsModel(NormalizeTotalMass)
	if err := model.AddSentence(sentence("a b")); err != nil {
		t.Fatal(err)
	}
	model.Normalize()
	model.Normalize()
	if err := model.AddSentence(sentence("c")); !errors.Is(err, ErrModelFrozen) {
		t.Fatalf("expected ErrModelFrozen, got %v", err)
	}
}

func TestMalformedSentenceIsSkipped(t *testing.T) {
	corpus := []Sentence{
		sentence("a b"),
		{Syllables: []string{"x", "y"}, Boundaries: Boundaries{true, true}},
		{},
		sentence("c"),
	}
	model, err := Train(NewSliceReader(corpus), DefaultOptions())
	if err != nil {
		t.Fatalf("expected malformed sentence to be skipped, got %v", err)
	}
	if model.Vocabulary().Size() != 2 || model.Vocabulary().Contains("x") {
		t.Fatalf("expected vocabulary {a b, c}, have %d words", model.Vocabulary().Size())
	}
	m := NewStatisticsModel(NormalizeTotalMass)
	if err = m.AddSentence(corpus[1]); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}
