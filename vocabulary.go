package wordseg

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/derekparker/trie"
)

// WordID identifies an interned word of a Vocabulary.
type WordID int32

// Reserved word identifiers for the implicit edges of a lattice.
const (
	BOS    WordID = -1 // beginning of sequence
	EOS    WordID = -2 // end of sequence
	NoWord WordID = -3 // a span which is not a vocabulary member
)

var errVocabularyFrozen = errors.New("vocabulary is frozen")

// WordReader yields dictionary words one-by-one.
// It should return io.EOF when the stream is exhausted.
type WordReader interface {
	Next() (word string, err error)
}

// Vocabulary is a set of words, each being a sequence of one or more
// syllables. Words are interned to WordIDs.
//
// A vocabulary keeps two indexes: a string trie for exact lookup of
// canonical word strings, and a syllable-level trie which lets decoders
// extend a candidate word one syllable at a time without building strings.
// The syllable-level index is compiled into a compact double-array on Freeze.
// After Freeze, a vocabulary is read-only and safe for concurrent use.
type Vocabulary struct {
	words   *trie.Trie        // canonical word => WordID (node meta)
	list    []string          // WordID => canonical word
	symbols map[string]uint32 // syllable => dense symbol, starting at 1
	spans   spanIndex
}

// NewVocabulary creates an empty, open vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		words:   trie.New(),
		symbols: make(map[string]uint32),
		spans:   newDATIndex(),
	}
}

// LoadVocabulary fills a new vocabulary from a streaming source and freezes it.
// Empty words are skipped.
func LoadVocabulary(name string, reader WordReader) (*Vocabulary, error) {
	v := NewVocabulary()
	for {
		word, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loading vocabulary %s: %w", name, err)
		}
		if strings.TrimSpace(word) == "" {
			continue
		}
		if _, err = v.Add(word); err != nil {
			return nil, fmt.Errorf("loading vocabulary %s: %w", name, err)
		}
	}
	v.Freeze()
	tracer().Infof("vocabulary %s loaded", name)
	return v, nil
}

// Add interns word and returns its identifier. Syllables are separated by
// whitespace. Adding a word which is already present returns the existing
// identifier, even for a frozen vocabulary.
func (v *Vocabulary) Add(word string) (WordID, error) {
	syllables := strings.Fields(word)
	if len(syllables) == 0 {
		return 0, errors.New("cannot add empty word to vocabulary")
	}
	canonical := strings.Join(syllables, " ")
	if id, ok := v.lookup(canonical); ok {
		return id, nil
	}
	if v.spans.Frozen() {
		return 0, fmt.Errorf("adding %q: %w", canonical, errVocabularyFrozen)
	}
	id := WordID(len(v.list))
	v.list = append(v.list, canonical)
	v.words.Add(canonical, id)
	key := make([]uint32, len(syllables))
	for i, syl := range syllables {
		sym, ok := v.symbols[syl]
		if !ok {
			sym = uint32(len(v.symbols) + 1)
			v.symbols[syl] = sym
		}
		key[i] = sym
	}
	v.spans.Insert(key, id)
	return id, nil
}

// AddSpan interns the word covering sp of syllables.
func (v *Vocabulary) AddSpan(syllables []string, sp Span) (WordID, error) {
	return v.Add(sp.Join(syllables))
}

// Freeze compiles the syllable index and makes v read-only.
func (v *Vocabulary) Freeze() {
	if v.spans.Frozen() {
		return
	}
	v.spans.Freeze()
	stats := v.Stats()
	tracer().Infof("vocabulary stats words=%d syllables=%d backend=%s used=%d total=%d fill=%.2f",
		stats.Words, stats.Syllables, stats.Backend, stats.UsedSlots, stats.TotalSlots, stats.FillRatio)
}

// Frozen is a predicate: has v been frozen?
func (v *Vocabulary) Frozen() bool {
	return v.spans.Frozen()
}

func (v *Vocabulary) lookup(canonical string) (WordID, bool) {
	node, ok := v.words.Find(canonical)
	if !ok {
		return 0, false
	}
	id, ok := node.Meta().(WordID)
	return id, ok
}

// ID returns the identifier of word, if word is a member of v.
func (v *Vocabulary) ID(word string) (WordID, bool) {
	return v.lookup(strings.Join(strings.Fields(word), " "))
}

// Contains is a predicate: is word a member of v?
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.ID(word)
	return ok
}

// HasPrefix is a predicate: does any word of v start with prefix?
// The prefix is matched on the canonical string, not on syllables.
func (v *Vocabulary) HasPrefix(prefix string) bool {
	return v.words.HasKeysWithPrefix(prefix)
}

// Word returns the canonical string of id. The reserved identifiers map
// to "<bos>" and "<eos>".
func (v *Vocabulary) Word(id WordID) string {
	switch {
	case id == BOS:
		return "<bos>"
	case id == EOS:
		return "<eos>"
	case id < 0 || int(id) >= len(v.list):
		return ""
	}
	return v.list[id]
}

// Size returns the number of words in v.
func (v *Vocabulary) Size() int {
	return len(v.list)
}

// Walker returns a fresh walker for extending candidate words.
func (v *Vocabulary) Walker() *Walker {
	return &Walker{vocab: v, it: v.spans.Iterator()}
}

// Walker extends a candidate word one syllable at a time.
type Walker struct {
	vocab *Vocabulary
	it    spanIterator
}

// Next appends syllable to the candidate word. It returns the identifier of
// the candidate if it is a member of the vocabulary. Once a candidate has
// left every word of the vocabulary, Next returns false for good.
func (w *Walker) Next(syllable string) (WordID, bool) {
	return w.it.Next(w.vocab.symbols[syllable])
}

// Reset restarts w with an empty candidate.
func (w *Walker) Reset() {
	w.it = w.vocab.spans.Iterator()
}

// VocabularyStats reports size and density metrics of a vocabulary.
type VocabularyStats struct {
	Words      int
	Syllables  int
	Backend    string
	UsedSlots  int
	TotalSlots int
	FillRatio  float64
}

// Stats returns size and density metrics for v.
func (v *Vocabulary) Stats() VocabularyStats {
	s := v.spans.Stats()
	return VocabularyStats{
		Words:      len(v.list),
		Syllables:  len(v.symbols),
		Backend:    s.Backend,
		UsedSlots:  s.UsedSlots,
		TotalSlots: s.TotalSlots,
		FillRatio:  s.FillRatio(),
	}
}
