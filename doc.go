// Package agree scores agreement between two annotated versions of the same
// text corpus: a gold reference and a submitted candidate, each a directory
// of documents with brat-style standoff annotations.
//
// # Quick Start
//
//	ev := agree.New()
//	report, err := ev.Run("corpus/gold", "corpus/submitted")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, r := range report.Results {
//	    fmt.Printf("%s agreement: %.4g\n", r.Label, r.Metrics.Overall)
//	}
//
// # Scoring
//
// The evaluator aligns the two sentence sequences, then scores every
// keyphrase label, every relation label, and the corpus as a whole. Matched
// items are partitioned into outcome buckets (exact, partial, missing,
// spurious, incorrect) and aggregated into three [0,1] ratios per label:
// concepts agreement, relations agreement, and a combined headline
// agreement. Partial matches contribute their span intersection/union ratio
// rather than a full point.
//
// # Concurrency
//
// Evaluation is a single-threaded batch pass over fully-loaded corpora; an
// Evaluator holds no resources and may be reused across runs.
package agree
