// Command agree-lint checks one corpus directory for annotation hygiene
// problems (overlapping keyphrases, duplicated relations) without scoring.
// Exits non-zero when any problem is found.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jamesainslie/go-agree/corpus"
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: agree-lint CORPUS_DIR")
		flag.PrintDefaults()
		os.Exit(1)
	}

	c, err := corpus.LoadDir(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	problems := 0
	for _, s := range c.Sentences {
		for _, group := range s.OverlappingKeyphrases() {
			problems++
			fmt.Printf("overlapping keyphrases in %q:\n", s.Text)
			for _, k := range group {
				fmt.Printf("  T%d %s %v %q\n", k.ID, k.Label, k.Spans, k.Text)
			}
		}
		for _, r := range s.DupRelations() {
			problems++
			fmt.Printf("duplicated relation %s T%d -> T%d in %q\n", r.Label, r.Origin, r.Target, s.Text)
		}
	}

	fmt.Printf("%d sentences, %d problems\n", c.Len(), problems)
	if problems > 0 {
		os.Exit(1)
	}
}
