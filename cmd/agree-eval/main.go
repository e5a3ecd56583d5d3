// Command agree-eval scores annotation agreement between a gold corpus
// directory and a submitted one, printing three metrics per label.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	agree "github.com/jamesainslie/go-agree"
	"github.com/jamesainslie/go-agree/internal/fscore"
)

func main() {
	var (
		isolate = flag.Bool("isolate", false, "Score relations independently of keyphrase mismatches")
		sameAs  = flag.String("same-as", "same-as", "Label of the co-reference relation")
		noClean = flag.Bool("no-clean", false, "Skip corpus cleaning (overlap merging, duplicate relation removal)")
		quiet   = flag.Bool("q", false, "Suppress cleaning and synchronization diagnostics")
		showF1  = flag.Bool("f1", false, "Also print precision, recall and F1 per label")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: agree-eval [OPTIONS] GOLD_DIR SUBMIT_DIR")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []agree.Option{
		agree.WithLogger(logger),
		agree.WithPropagateError(!*isolate),
		agree.WithSameAsLabel(*sameAs),
	}
	if *noClean {
		opts = append(opts, agree.WithoutCleaning())
	}

	report, err := agree.New(opts...).Run(flag.Arg(0), flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, r := range report.Results {
		fmt.Printf("%s concepts_agreement: %.4g\n", r.Label, r.Metrics.Concepts)
		fmt.Printf("%s relations_agreement: %.4g\n", r.Label, r.Metrics.Relations)
		fmt.Printf("%s agreement: %.4g\n", r.Label, r.Metrics.Overall)
		if *showF1 {
			k := fscore.Keyphrases(r.Matches)
			rel := fscore.Relations(r.Matches)
			fmt.Printf("%s concepts_f1: %.4g (P %.4g, R %.4g)\n", r.Label, k.F1, k.Precision, k.Recall)
			fmt.Printf("%s relations_f1: %.4g (P %.4g, R %.4g)\n", r.Label, rel.F1, rel.Precision, rel.Recall)
		}
	}
}
