package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/wordseg"
	"github.com/npillmayer/wordseg/evbcorpus"
	"github.com/npillmayer/wordseg/rawtext"
	"github.com/npillmayer/wordseg/wordlist"
)

// appConfig is set up by main before a command is dispatched.
var appConfig interface {
	schuko.Configuration
	Set(key string, value interface{})
}

// setFlags copies the flags given on the command line into the application
// configuration. keys maps flag names to configuration keys.
func setFlags(cmd *commander.Command, keys map[string]string) {
	cmd.Flag.Visit(func(f *flag.Flag) {
		if key, ok := keys[f.Name]; ok {
			appConfig.Set(key, f.Value.String())
		}
	})
}

// expand resolves a comma separated list of glob patterns to a sorted list
// of files.
func expand(patterns string) ([]string, error) {
	var files []string
	for _, pattern := range strings.Split(patterns, ",") {
		if pattern = strings.TrimSpace(pattern); pattern == "" {
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files given")
	}
	sort.Strings(files)
	return files, nil
}

func evaluate(seg wordseg.Segmenter, testFiles string) error {
	paths, err := expand(testFiles)
	if err != nil {
		return err
	}
	r := evbcorpus.NewMultiReader(paths)
	defer r.Close()
	c, err := wordseg.Evaluate(seg, r)
	if err != nil {
		return err
	}
	printScores(c)
	return nil
}

func printScores(c wordseg.Confusion) {
	fmt.Printf("Accuracy:  %.4f\n", c.Accuracy())
	fmt.Printf("Precision: %.4f\n", c.Precision())
	fmt.Printf("Recall:    %.4f\n", c.Recall())
	fmt.Printf("F1:        %.4f\n", c.F1())
}

// --- lattice ---------------------------------------------------------------

func latticeCommand() *commander.Command {
	cmd := &commander.Command{
		Run:       runLattice,
		UsageLine: "lattice -train <files> -test <files> [-norm total|conditional]",
		Short:     "bigram word model decoded over a lattice",
		Long: `
Trains a bigram model over the words of a segmented corpus and decodes test
sentences by dynamic programming over the lattice of candidate words.

	$ wordseg lattice -train 'corpus/N0[0-6]*.sgml' -test 'corpus/N07*.sgml'
`,
		Flag: *flag.NewFlagSet("lattice", flag.ExitOnError),
	}
	cmd.Flag.String("train", "", "training corpus files (glob patterns, comma separated)")
	cmd.Flag.String("test", "", "test corpus files (glob patterns, comma separated)")
	cmd.Flag.String("norm", "total", "bigram normalization: total or conditional")
	return cmd
}

func runLattice(cmd *commander.Command, args []string) error {
	setFlags(cmd, map[string]string{"norm": wordseg.ConfNormalization})
	opts := wordseg.OptionsFromConfig(appConfig)
	paths, err := expand(cmd.Flag.Lookup("train").Value.String())
	if err != nil {
		return err
	}
	train := evbcorpus.NewMultiReader(paths)
	defer train.Close()
	model, err := wordseg.Train(train, opts)
	if err != nil {
		return err
	}
	return evaluate(wordseg.NewLatticeDecoder(model), cmd.Flag.Lookup("test").Value.String())
}

// --- hmm -------------------------------------------------------------------

func hmmCommand() *commander.Command {
	cmd := &commander.Command{
		Run:       runHMM,
		UsageLine: "hmm -train <files> -test <files> [-leak]",
		Short:     "Begin/Inside hidden Markov model decoded with Viterbi",
		Long: `
Trains a two-state hidden Markov model over syllables and tags test sentences
with the Viterbi algorithm. With -leak, the gold tags of every test sentence
are added to the emission table after the sentence has been scored.
`,
		Flag: *flag.NewFlagSet("hmm", flag.ExitOnError),
	}
	cmd.Flag.String("train", "", "training corpus files (glob patterns, comma separated)")
	cmd.Flag.String("test", "", "test corpus files (glob patterns, comma separated)")
	cmd.Flag.Bool("leak", false, "learn emissions from test sentences")
	return cmd
}

func runHMM(cmd *commander.Command, args []string) error {
	setFlags(cmd, map[string]string{"leak": wordseg.ConfHMMLeak})
	opts := wordseg.OptionsFromConfig(appConfig)
	paths, err := expand(cmd.Flag.Lookup("train").Value.String())
	if err != nil {
		return err
	}
	train := evbcorpus.NewMultiReader(paths)
	defer train.Close()
	params, err := wordseg.TrainHMM(train)
	if err != nil {
		return err
	}
	return evaluate(wordseg.NewHMMDecoder(params, opts), cmd.Flag.Lookup("test").Value.String())
}

// --- maxmatch --------------------------------------------------------------

func maxmatchCommand() *commander.Command {
	cmd := &commander.Command{
		Run:       runMaxmatch,
		UsageLine: "maxmatch -dict <file> -test <files>",
		Short:     "greedy maximal matching against a dictionary",
		Long: `
Segments test sentences by growing each word for as long as it is found in a
dictionary. The dictionary lists one word per line, e.g., Viet74K.txt.
`,
		Flag: *flag.NewFlagSet("maxmatch", flag.ExitOnError),
	}
	cmd.Flag.String("dict", "", "dictionary file, one word per line")
	cmd.Flag.String("test", "", "test corpus files (glob patterns, comma separated)")
	return cmd
}

func runMaxmatch(cmd *commander.Command, args []string) error {
	name := cmd.Flag.Lookup("dict").Value.String()
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	dict, err := wordlist.LoadVocabulary(filepath.Base(name), f)
	if err != nil {
		return err
	}
	return evaluate(wordseg.NewMaximalMatchDecoder(dict), cmd.Flag.Lookup("test").Value.String())
}

// --- threshold -------------------------------------------------------------

func thresholdCommand() *commander.Command {
	cmd := &commander.Command{
		Run:       runThreshold,
		UsageLine: "threshold -text <file> -heldout <files> -test <files> [-min n] [-max n]",
		Short:     "transition frequency threshold with loner words",
		Long: `
Counts syllable transitions in unlabeled text, one sentence per line, and
places a word boundary wherever a transition is rarer than a threshold. The
threshold is tuned on held-out sentences, trying every integer in [min, max).
`,
		Flag: *flag.NewFlagSet("threshold", flag.ExitOnError),
	}
	cmd.Flag.String("text", "", "unlabeled text file, one sentence per line")
	cmd.Flag.String("heldout", "", "held-out corpus files for tuning (glob patterns, comma separated)")
	cmd.Flag.String("test", "", "test corpus files (glob patterns, comma separated)")
	cmd.Flag.Int("min", 1, "smallest threshold tried")
	cmd.Flag.Int("max", 1000, "tuning stops before this threshold")
	return cmd
}

func runThreshold(cmd *commander.Command, args []string) error {
	setFlags(cmd, map[string]string{
		"min": wordseg.ConfThresholdMin,
		"max": wordseg.ConfThresholdMax,
	})
	opts := wordseg.OptionsFromConfig(appConfig)
	f, err := os.Open(cmd.Flag.Lookup("text").Value.String())
	if err != nil {
		return err
	}
	defer f.Close()
	table, err := rawtext.LoadTransitionTable(f)
	if err != nil {
		return err
	}
	distinct, total := table.Pairs()
	fmt.Printf("Transitions: %d distinct, %d total\n", distinct, total)
	paths, err := expand(cmd.Flag.Lookup("heldout").Value.String())
	if err != nil {
		return err
	}
	heldOut := evbcorpus.NewMultiReader(paths)
	defer heldOut.Close()
	sentences, err := wordseg.ReadAll(heldOut)
	if err != nil {
		return err
	}
	threshold, f1 := wordseg.TuneThreshold(table, opts.Loners, sentences, opts.ThresholdMin, opts.ThresholdMax)
	decoder := wordseg.NewThresholdDecoder(table, threshold, opts.Loners)
	fmt.Printf("Threshold: %d (held-out F1 %.4f)\n", decoder.Threshold(), f1)
	return evaluate(decoder, cmd.Flag.Lookup("test").Value.String())
}
