package agree

import (
	"fmt"

	"github.com/jamesainslie/go-agree/corpus"
	"github.com/jamesainslie/go-agree/matcher"
)

// PartialScore returns the span intersection/union ratio of two keyphrases,
// in [0,1]. Symmetric. Both keyphrases must own at least one non-empty span.
func PartialScore(a, b *corpus.Keyphrase) float64 {
	intersection, union := corpus.Overlap(a.Spans, b.Spans)
	return float64(intersection) / float64(union)
}

// Metrics holds the three agreement ratios for one label scope.
type Metrics struct {
	Concepts  float64
	Relations float64
	Overall   float64
}

// ConceptsAgreement scores keyphrase-level agreement: exact matches count
// one point, partial matches their overlap ratio, divided by the number of
// keyphrase items considered on both sides.
//
// When all is false the scope is a single label, where incorrect matches
// cannot occur; a non-empty incorrect bucket then signals a broken matcher
// or filter upstream and panics.
func ConceptsAgreement(m *matcher.Matches, all bool) float64 {
	if !all && len(m.Incorrect) > 0 {
		panic(fmt.Sprintf("agree: %d incorrect matches in a single-label scope", len(m.Incorrect)))
	}

	score := float64(len(m.Correct)) + partialSum(m)
	n := len(m.Correct) + len(m.Partial) + len(m.Missing) + len(m.Spurious) + len(m.Incorrect)
	if n == 0 {
		return 1.0
	}
	return score / float64(n)
}

// RelationsAgreement scores relation-level agreement. With no relations to
// disagree about the agreement is vacuously 1.0.
func RelationsAgreement(m *matcher.Matches) float64 {
	n := len(m.CorrectRel) + len(m.MissingRel) + len(m.SpuriousRel)
	if n == 0 {
		return 1.0
	}
	return float64(len(m.CorrectRel)) / float64(n)
}

// Agreement scores both annotation layers combined: correct keyphrases,
// correct relations and partial scores over the total item count across all
// buckets.
func Agreement(m *matcher.Matches) float64 {
	score := float64(len(m.Correct)+len(m.CorrectRel)) + partialSum(m)
	n := len(m.Correct) + len(m.Partial) + len(m.Missing) + len(m.Spurious) + len(m.Incorrect) +
		len(m.CorrectRel) + len(m.MissingRel) + len(m.SpuriousRel)
	if n == 0 {
		return 1.0
	}
	return score / float64(n)
}

// ComputeMetrics bundles the three agreement ratios for one match outcome.
func ComputeMetrics(m *matcher.Matches) Metrics {
	return Metrics{
		Concepts:  ConceptsAgreement(m, true),
		Relations: RelationsAgreement(m),
		Overall:   Agreement(m),
	}
}

func partialSum(m *matcher.Matches) float64 {
	sum := 0.0
	for _, p := range m.Partial {
		sum += PartialScore(p.Gold, p.Submitted)
	}
	return sum
}
