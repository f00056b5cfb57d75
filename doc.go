/*
Package wordseg segments sequences of syllables into words.

Some languages, Vietnamese being the prominent example, separate syllables by
whitespace but do not mark where a multi-syllable word begins or ends. Package
wordseg posits these word boundaries. It offers four segmenters sharing one
contract (a syllable slice in, a boundary vector out):

  - LatticeDecoder: a bigram model over words, decoded by dynamic programming
    over a lattice of candidate word spans.
  - HMMDecoder: a two-state (Begin, Inside) hidden Markov model over
    syllables, decoded with Viterbi.
  - MaximalMatchDecoder: greedy longest match against a dictionary.
  - ThresholdDecoder: a per-boundary decision on syllable transition
    frequencies, with a set of function words which always stand alone.

The smoothing of the statistical models is deliberately crude: unseen word
bigrams get a flat fallback probability, unseen syllables get no emission
probability at all.

Input is expected to be normalized already (see package normalize). Corpus
formats are parsed outside this package; use adapters like package evbcorpus
to feed training and evaluation through a SentenceReader.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package wordseg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'wordseg'
func tracer() tracing.Trace {
	return tracing.Select("wordseg")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
