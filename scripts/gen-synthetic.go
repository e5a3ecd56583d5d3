//go:build ignore

// Generate a synthetic gold/submitted corpus pair for exercising the
// scorer end to end. The submitted copy is perturbed with span jitter,
// label swaps, dropped annotations and a dropped sentence.
// Usage: go run ./scripts/gen-synthetic.go [-out testdata] [-seed 1]
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

type span struct{ start, end int }

type keyphrase struct {
	label string
	spans []span
}

type relation struct {
	label          string
	origin, target int
}

type sentence struct {
	text       string
	keyphrases []keyphrase
	relations  []relation
}

var sentences = []sentence{
	{
		text: "El asma es una enfermedad que afecta las vias respiratorias.",
		keyphrases: []keyphrase{
			{"Concept", []span{{3, 7}}},
			{"Concept", []span{{15, 25}}},
			{"Concept", []span{{37, 59}}},
		},
		relations: []relation{
			{"is-a", 0, 1},
			{"target", 1, 2},
		},
	},
	{
		text: "La vacuna previene la infeccion y reduce los sintomas graves.",
		keyphrases: []keyphrase{
			{"Concept", []span{{3, 9}}},
			{"Action", []span{{10, 18}}},
			{"Concept", []span{{22, 31}}},
			{"Concept", []span{{45, 53}, {54, 60}}},
		},
		relations: []relation{
			{"subject", 1, 0},
			{"target", 1, 2},
		},
	},
	{
		text: "Los antibioticos no curan las infecciones causadas por virus.",
		keyphrases: []keyphrase{
			{"Concept", []span{{4, 16}}},
			{"Action", []span{{20, 25}}},
			{"Concept", []span{{30, 41}}},
			{"Concept", []span{{55, 60}}},
		},
		relations: []relation{
			{"subject", 1, 0},
			{"target", 1, 2},
			{"same-as", 2, 3},
		},
	},
	{
		text: "El ejercicio regular mejora la salud cardiovascular.",
		keyphrases: []keyphrase{
			{"Concept", []span{{3, 20}}},
			{"Action", []span{{21, 27}}},
			{"Concept", []span{{31, 51}}},
		},
		relations: []relation{
			{"subject", 1, 0},
			{"target", 1, 2},
		},
	},
}

func main() {
	out := flag.String("out", "testdata", "Output directory")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	goldDir := filepath.Join(*out, "gold")
	submitDir := filepath.Join(*out, "submitted")
	for _, dir := range []string{goldDir, submitDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := write(goldDir, sentences); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := write(submitDir, perturb(rng, sentences)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d gold sentences to %s\n", len(sentences), goldDir)
}

// perturb returns a noisy copy: one sentence dropped, some spans jittered,
// some labels swapped, some annotations removed.
func perturb(rng *rand.Rand, gold []sentence) []sentence {
	var out []sentence
	skip := rng.Intn(len(gold))

	for i, s := range gold {
		if i == skip {
			continue
		}

		p := sentence{text: s.text}
		for _, k := range s.keyphrases {
			switch rng.Intn(6) {
			case 0: // shrink the first span
				spans := append([]span(nil), k.spans...)
				if spans[0].end-spans[0].start > 3 {
					spans[0].start++
				}
				p.keyphrases = append(p.keyphrases, keyphrase{k.label, spans})
			case 1: // drop the keyphrase entirely
			case 2: // swap the label
				label := "Concept"
				if k.label == "Concept" {
					label = "Action"
				}
				p.keyphrases = append(p.keyphrases, keyphrase{label, k.spans})
			default:
				p.keyphrases = append(p.keyphrases, k)
			}
		}
		for _, r := range s.relations {
			if rng.Intn(5) == 0 {
				continue
			}
			if r.origin < len(p.keyphrases) && r.target < len(p.keyphrases) {
				p.relations = append(p.relations, r)
			}
		}
		out = append(out, p)
	}
	return out
}

func write(dir string, corpus []sentence) error {
	var text strings.Builder
	var ann strings.Builder

	offset := 0
	tid := 0
	rid := 0
	for _, s := range corpus {
		text.WriteString(s.text)
		text.WriteByte('\n')

		base := tid
		for _, k := range s.keyphrases {
			tid++
			frags := make([]string, len(k.spans))
			texts := make([]string, len(k.spans))
			for i, sp := range k.spans {
				frags[i] = fmt.Sprintf("%d %d", offset+sp.start, offset+sp.end)
				texts[i] = s.text[sp.start:sp.end]
			}
			fmt.Fprintf(&ann, "T%d\t%s %s\t%s\n", tid, k.label, strings.Join(frags, ";"), strings.Join(texts, " "))
		}
		for _, r := range s.relations {
			rid++
			fmt.Fprintf(&ann, "R%d\t%s Arg1:T%d Arg2:T%d\n", rid, r.label, base+r.origin+1, base+r.target+1)
		}

		offset += len(s.text) + 1
	}

	if err := os.WriteFile(filepath.Join(dir, "corpus.txt"), []byte(text.String()), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "corpus.ann"), []byte(ann.String()), 0o644)
}
