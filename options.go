package wordseg

import (
	"strings"

	"github.com/npillmayer/schuko"
)

// Normalization selects how bigram counts are turned into probabilities.
type Normalization int

const (
	// NormalizeTotalMass divides every bigram count by the total of all
	// bigram counts. This is not a conditional distribution.
	NormalizeTotalMass Normalization = iota
	// NormalizeConditional divides every bigram count by the total count of
	// bigrams sharing its first word.
	NormalizeConditional
)

func (n Normalization) String() string {
	if n == NormalizeConditional {
		return "conditional"
	}
	return "total"
}

// ParseNormalization maps "total" and "conditional" to a Normalization.
// Anything else maps to NormalizeTotalMass.
func ParseNormalization(s string) Normalization {
	if strings.EqualFold(strings.TrimSpace(s), "conditional") {
		return NormalizeConditional
	}
	return NormalizeTotalMass
}

// Options collects the tunables of the segmenters.
type Options struct {
	Normalization   Normalization // bigram normalization of StatisticsModel
	HMMEmissionLeak bool          // HMMDecoder.Learn updates emissions
	ThresholdMin    int           // first threshold tried by TuneThreshold
	ThresholdMax    int           // TuneThreshold stops before this value
	Loners          []string      // function words which always stand alone
}

// DefaultOptions returns the settings matching the reference behaviour.
func DefaultOptions() Options {
	return Options{
		Normalization: NormalizeTotalMass,
		ThresholdMin:  1,
		ThresholdMax:  1000,
		Loners:        DefaultLoners(),
	}
}

// Configuration keys read by OptionsFromConfig.
const (
	ConfNormalization = "wordseg.normalization"
	ConfHMMLeak       = "wordseg.hmm-leak"
	ConfThresholdMin  = "wordseg.threshold.min"
	ConfThresholdMax  = "wordseg.threshold.max"
	ConfLoners        = "wordseg.loners"
)

// OptionsFromConfig reads options from an application configuration.
// Keys which are not set keep their default value.
func OptionsFromConfig(conf schuko.Configuration) Options {
	opts := DefaultOptions()
	if conf == nil {
		return opts
	}
	if conf.IsSet(ConfNormalization) {
		opts.Normalization = ParseNormalization(conf.GetString(ConfNormalization))
	}
	if conf.IsSet(ConfHMMLeak) {
		opts.HMMEmissionLeak = conf.GetBool(ConfHMMLeak)
	}
	if conf.IsSet(ConfThresholdMin) {
		opts.ThresholdMin = conf.GetInt(ConfThresholdMin)
	}
	if conf.IsSet(ConfThresholdMax) {
		opts.ThresholdMax = conf.GetInt(ConfThresholdMax)
	}
	if conf.IsSet(ConfLoners) {
		opts.Loners = opts.Loners[:0]
		for _, l := range strings.Split(conf.GetString(ConfLoners), ",") {
			if l = strings.TrimSpace(l); l != "" {
				opts.Loners = append(opts.Loners, l)
			}
		}
	}
	tracer().Debugf("options: normalization=%s leak=%v threshold=[%d,%d) loners=%d",
		opts.Normalization, opts.HMMEmissionLeak, opts.ThresholdMin, opts.ThresholdMax, len(opts.Loners))
	return opts
}
