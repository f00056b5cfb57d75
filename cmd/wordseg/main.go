/*
Command wordseg trains and evaluates syllable-to-word segmenters on
word-segmented Vietnamese corpora.

	wordseg [-trace level] <command> [flags]

Commands are lattice, hmm, maxmatch and threshold. Each prints accuracy,
precision, recall and F1 of the posited word boundaries.

Settings are read from a NestedText file "wordseg.nt" at the usual
configuration locations and may be overridden by flags.
*/
package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// tracer writes to trace with key 'wordseg'
func tracer() tracing.Trace {
	return tracing.Select("wordseg")
}

var traceLevel string

func rootCommand() *commander.Command {
	cmd := &commander.Command{
		UsageLine: "wordseg [-trace level] <command> [flags]",
		Short:     "segment syllables into words",
		Subcommands: []*commander.Command{
			latticeCommand(),
			hmmCommand(),
			maxmatchCommand(),
			thresholdCommand(),
		},
		Flag: *flag.NewFlagSet("wordseg", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&traceLevel, "trace", "", "trace level (Debug, Info, Error)")
	return cmd
}

// configure loads the application configuration and sets up tracing.
func configure() (*koanfadapter.KConf, error) {
	conf := koanfadapter.New(koanf.New("."), "wordseg", []string{"nt"})
	conf.InitDefaults()
	if traceLevel != "" {
		for _, key := range []string{"root", "wordseg", "corpus"} {
			conf.Set("tracelevel."+key, traceLevel)
		}
	} else if !conf.IsSet("tracelevel.root") {
		conf.Set("tracelevel.root", "Info")
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return nil, err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return conf, nil
}

func main() {
	cmd := rootCommand()
	if err := cmd.Flag.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "wordseg: %v\n", err)
		os.Exit(1)
	}
	conf, err := configure()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordseg: %v\n", err)
		os.Exit(1)
	}
	appConfig = conf
	if err = cmd.Dispatch(cmd.Flag.Args()); err != nil {
		tracer().Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "wordseg: %v\n", err)
		os.Exit(1)
	}
}
