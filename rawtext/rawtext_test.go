package rawtext

import (
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestReader(t *testing.T) {
	src := "1\tHọc sinh giỏi.\n2\t\n3\tViệt Nam\n"
	r := NewReader(strings.NewReader(src))
	want := [][]string{{"học", "sinh", "giỏi"}, {"việt", "nam"}}
	for _, w := range want {
		syllables, err := r.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !reflect.DeepEqual(syllables, w) {
			t.Fatalf("syllables mismatch: got %q, want %q", syllables, w)
		}
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestLoadTransitionTable(t *testing.T) {
	table, err := LoadTransitionTable(strings.NewReader("a b c\na b\n"))
	if err != nil {
		t.Fatal(err)
	}
	distinct, total := table.Pairs()
	if distinct != 2 || total != 3 {
		t.Fatalf("expected 2 distinct of 3 pairs, have %d of %d", distinct, total)
	}
	if v := table.Value("a", "b"); v < 666666 || v > 666667 {
		t.Fatalf("value of (a,b) should be 2/3 of a million, is %f", v)
	}
}
