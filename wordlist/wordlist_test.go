package wordlist

import (
	"io"
	"strings"
	"testing"
)

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader("Học  Sinh\n\n123\ngiỏi\n"))
	want := []string{"học sinh", "giỏi"}
	for _, w := range want {
		word, err := r.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if word != w {
			t.Fatalf("word mismatch: got %q, want %q", word, w)
		}
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestLoadVocabulary(t *testing.T) {
	vocab, err := LoadVocabulary("test", strings.NewReader("học sinh\ngiỏi\nhọc sinh\n"))
	if err != nil {
		t.Fatal(err)
	}
	if vocab.Size() != 2 {
		t.Fatalf("expected 2 distinct words, have %d", vocab.Size())
	}
	if !vocab.Frozen() {
		t.Fatalf("expected loaded vocabulary to be frozen")
	}
	if !vocab.Contains("học sinh") || vocab.Contains("học") {
		t.Fatalf("vocabulary membership is wrong")
	}
}
