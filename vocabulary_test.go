package wordseg

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type sliceWordReader struct {
	words []string
	index int
}

func (r *sliceWordReader) Next() (string, error) {
	if r.index >= len(r.words) {
		return "", io.EOF
	}
	w := r.words[r.index]
	r.index++
	return w, nil
}

func TestVocabularyAdd(t *testing.T) {
	v := NewVocabulary()
	a, err := v.Add("học  sinh")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := v.Add("giỏi")
	if a2, _ := v.Add(" học sinh "); a2 != a {
		t.Fatalf("expected re-adding a word to return id %d, got %d", a, a2)
	}
	if a == b || v.Size() != 2 {
		t.Fatalf("expected 2 distinct words, have %d", v.Size())
	}
	if w := v.Word(a); w != "học sinh" {
		t.Fatalf("expected canonical word 'học sinh', got %q", w)
	}
	if v.Word(BOS) != "<bos>" || v.Word(EOS) != "<eos>" || v.Word(42) != "" {
		t.Fatalf("reserved or unknown ids resolve wrongly")
	}
	if _, err = v.Add("   "); err == nil {
		t.Fatalf("expected an error for an empty word")
	}
	if !v.HasPrefix("học s") || v.HasPrefix("sinh") {
		t.Fatalf("prefix queries are wrong")
	}
}

func TestVocabularyFrozen(t *testing.T) {
	v := NewVocabulary()
	id, _ := v.Add("a b")
	v.Freeze()
	if !v.Frozen() {
		t.Fatalf("expected vocabulary to be frozen")
	}
	if again, err := v.Add("a b"); err != nil || again != id {
		t.Fatalf("expected existing word to be found in frozen vocabulary, got %d/%v", again, err)
	}
	if _, err := v.Add("c"); !errors.Is(err, errVocabularyFrozen) {
		t.Fatalf("expected frozen-vocabulary error, got %v", err)
	}
}

// walk feeds syllables to a fresh walker and returns the ids of the prefixes
// which are words, -1 otherwise.
func walk(v *Vocabulary, syllables ...string) []WordID {
	w := v.Walker()
	ids := make([]WordID, len(syllables))
	for i, syl := range syllables {
		id, ok := w.Next(syl)
		if !ok {
			id = -1
		}
		ids[i] = id
	}
	return ids
}

func TestWalkerBeforeAndAfterFreeze(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wordseg")
	defer teardown()
	//
	words := []string{"a", "a b", "a b c d", "b", "b c", "c a b", "đại học", "đại học quốc gia"}
	v := NewVocabulary()
	for _, w := range words {
		if _, err := v.Add(w); err != nil {
			t.Fatal(err)
		}
	}
	queries := [][]string{
		{"a", "b", "c", "d"},
		{"b", "c", "a"},
		{"c", "a", "b"},
		{"đại", "học", "quốc", "gia"},
		{"x", "a"},
		{"a", "x", "b"},
	}
	before := make([][]WordID, len(queries))
	for i, q := range queries {
		before[i] = walk(v, q...)
	}
	if stats := v.Stats(); stats.Backend != "tree" {
		t.Fatalf("expected tree backend before freezing, have %q", stats.Backend)
	}
	v.Freeze()
	stats := v.Stats()
	if stats.Backend != "dat" || stats.Words != len(words) || stats.FillRatio <= 0 || stats.FillRatio > 1 {
		t.Fatalf("unexpected stats after freezing: %+v", stats)
	}
	for i, q := range queries {
		after := walk(v, q...)
		for k := range after {
			if after[k] != before[i][k] {
				t.Fatalf("walk %v differs after freezing: %v vs %v", q, after, before[i])
			}
		}
		for k := range q {
			prefix := strings.Join(q[:k+1], " ")
			id, ok := v.ID(prefix)
			if ok != (after[k] >= 0) || (ok && id != after[k]) {
				t.Fatalf("walk of %q disagrees with lookup: %d vs %d/%v", prefix, after[k], id, ok)
			}
		}
	}
}

func TestLoadVocabulary(t *testing.T) {
	v, err := LoadVocabulary("test", &sliceWordReader{words: []string{"a b", "", "c", "a b"}})
	if err != nil {
		t.Fatal(err)
	}
	if v.Size() != 2 || !v.Frozen() {
		t.Fatalf("expected frozen vocabulary of 2 words, have %d", v.Size())
	}
}
