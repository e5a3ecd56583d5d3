// Package fscore derives precision, recall and F1 from match outcomes.
// Agreement ratios answer "how close are two annotators"; F-scores answer
// the asymmetric question "how well does the submission recover the gold
// standard", so both views are reported side by side.
package fscore

import (
	"github.com/jamesainslie/go-agree/corpus"
	"github.com/jamesainslie/go-agree/matcher"
)

// Metrics holds evaluation results for one kind of annotation.
type Metrics struct {
	Correct   int
	Partial   int
	Incorrect int
	Missing   int
	Spurious  int
	Precision float64
	Recall    float64
	F1        float64
}

// Keyphrases scores keyphrase matching. Partial matches contribute their
// overlap ratio rather than a full point, so a submission of sloppy spans
// scores between a miss and a hit.
func Keyphrases(m *matcher.Matches) Metrics {
	hits := float64(len(m.Correct))
	for _, p := range m.Partial {
		inter, union := corpus.Overlap(p.Gold.Spans, p.Submitted.Spans)
		if union > 0 {
			hits += float64(inter) / float64(union)
		}
	}

	found := len(m.Correct) + len(m.Partial) + len(m.Incorrect)
	mt := Metrics{
		Correct:   len(m.Correct),
		Partial:   len(m.Partial),
		Incorrect: len(m.Incorrect),
		Missing:   len(m.Missing),
		Spurious:  len(m.Spurious),
	}
	return finish(mt, hits, found+len(m.Spurious), found+len(m.Missing))
}

// Relations scores relation matching. Relations match exactly or not at
// all, so hits are whole points.
func Relations(m *matcher.Matches) Metrics {
	mt := Metrics{
		Correct:  len(m.CorrectRel),
		Missing:  len(m.MissingRel),
		Spurious: len(m.SpuriousRel),
	}
	hits := float64(mt.Correct)
	return finish(mt, hits, mt.Correct+mt.Spurious, mt.Correct+mt.Missing)
}

func finish(m Metrics, hits float64, precisionDenom, recallDenom int) Metrics {
	if precisionDenom > 0 {
		m.Precision = hits / float64(precisionDenom)
	}
	if recallDenom > 0 {
		m.Recall = hits / float64(recallDenom)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
