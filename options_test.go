package wordseg

import (
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
)

func TestDefaultOptions(t *testing.T) {
	opts := OptionsFromConfig(nil)
	if opts.Normalization != NormalizeTotalMass || opts.HMMEmissionLeak {
		t.Fatalf("unexpected defaults %+v", opts)
	}
	if opts.ThresholdMin != 1 || opts.ThresholdMax != 1000 || len(opts.Loners) != 32 {
		t.Fatalf("unexpected threshold defaults %+v", opts)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	conf := testconfig.Conf{
		ConfNormalization: "Conditional",
		ConfHMMLeak:       "true",
		ConfThresholdMin:  "5",
		ConfThresholdMax:  50,
		ConfLoners:        "và, của,,",
	}
	opts := OptionsFromConfig(conf)
	if opts.Normalization != NormalizeConditional {
		t.Errorf("normalization is %s, want conditional", opts.Normalization)
	}
	if !opts.HMMEmissionLeak {
		t.Errorf("expected leak mode to be switched on")
	}
	if opts.ThresholdMin != 5 || opts.ThresholdMax != 50 {
		t.Errorf("threshold range is [%d,%d), want [5,50)", opts.ThresholdMin, opts.ThresholdMax)
	}
	if !reflect.DeepEqual(opts.Loners, []string{"và", "của"}) {
		t.Errorf("loners are %q", opts.Loners)
	}
	if len(DefaultLoners()) != 32 {
		t.Errorf("configured loners must not alter the defaults")
	}
}

func TestParseNormalization(t *testing.T) {
	for input, want := range map[string]Normalization{
		"total":        NormalizeTotalMass,
		"conditional":  NormalizeConditional,
		" CONDITIONAL": NormalizeConditional,
		"unknown":      NormalizeTotalMass,
	} {
		if got := ParseNormalization(input); got != want {
			t.Errorf("ParseNormalization(%q) = %s, want %s", input, got, want)
		}
	}
}
