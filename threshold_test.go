package wordseg

import (
	"io"
	"math"
	"reflect"
	"testing"
)

type sliceSyllableReader struct {
	sentences [][]string
}

func (r *sliceSyllableReader) Next() ([]string, error) {
	if len(r.sentences) == 0 {
		return nil, io.EOF
	}
	s := r.sentences[0]
	r.sentences = r.sentences[1:]
	return s, nil
}

func transitionTable(t *testing.T) *TransitionTable {
	t.Helper()
	table, err := BuildTransitionTable(&sliceSyllableReader{sentences: [][]string{
		{"a", "b"},
		{"a", "b"},
		{"b", "c"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestTransitionTable(t *testing.T) {
	table := transitionTable(t)
	if v := table.Value("a", "b"); math.Abs(v-2e6/3) > 1e-6 {
		t.Errorf("value of (a,b) is %f, want 666666.67", v)
	}
	if v := table.Value("b", "c"); math.Abs(v-1e6/3) > 1e-6 {
		t.Errorf("value of (b,c) is %f, want 333333.33", v)
	}
	if v := table.Value("c", "a"); v != 0 {
		t.Errorf("unseen pair has value %f", v)
	}
	if f := table.Frequency("b"); f != 3 {
		t.Errorf("frequency of b is %d, want 3", f)
	}
	if distinct, total := table.Pairs(); distinct != 2 || total != 3 {
		t.Errorf("pairs are %d distinct, %d total, want 2 and 3", distinct, total)
	}
}

func TestThresholdDecoder(t *testing.T) {
	table := transitionTable(t)
	tests := []struct {
		threshold int
		loners    []string
		syllables []string
		want      Boundaries
	}{
		{500000, nil, []string{"a", "b", "c"}, Boundaries{false, true}},
		{100000, nil, []string{"a", "b", "c"}, Boundaries{false, false}},
		{700000, nil, []string{"a", "b", "c"}, Boundaries{true, true}},
		{100000, []string{"b"}, []string{"a", "b", "c"}, Boundaries{true, true}},
		{100000, []string{"c"}, []string{"a", "b", "c"}, Boundaries{false, true}},
		{1, nil, []string{"c", "a"}, Boundaries{true}},
		{1, nil, []string{"a"}, Boundaries{}},
	}
	for i, tt := range tests {
		d := NewThresholdDecoder(table, tt.threshold, tt.loners)
		if d.Threshold() != tt.threshold {
			t.Errorf("case %d: threshold is %d, want %d", i, d.Threshold(), tt.threshold)
		}
		if got := d.Segment(tt.syllables); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("case %d: boundaries are %v, want %v", i, got, tt.want)
		}
	}
	if NewThresholdDecoder(table, 1, nil).Segment(nil) != nil {
		t.Errorf("expected nil boundaries for empty input")
	}
}

func TestTuneThreshold(t *testing.T) {
	table := transitionTable(t)
	heldOut := []Sentence{sentence("a b", "c")}
	threshold, f1 := TuneThreshold(table, nil, heldOut, 300000, 700000)
	if threshold != 333334 || f1 != 1 {
		t.Fatalf("tuned threshold is %d with F1 %f, want 333334 with F1 1", threshold, f1)
	}
	// no boundary in the gold data: F1 stays 0 and lo is kept
	threshold, f1 = TuneThreshold(table, nil, []Sentence{sentence("a b c")}, 5, 10)
	if threshold != 5 || f1 != 0 {
		t.Fatalf("tuned threshold is %d with F1 %f, want 5 with F1 0", threshold, f1)
	}
}

func TestDefaultLoners(t *testing.T) {
	loners := DefaultLoners()
	if len(loners) != 32 {
		t.Fatalf("expected 32 default loners, have %d", len(loners))
	}
	if !newLonerSet(loners).contains("của") {
		t.Fatalf("expected 'của' to be a loner")
	}
}
