// Package matcher partitions the keyphrases and relations of two aligned
// annotated collections into disjoint match outcome buckets. Every gold
// keyphrase lands in exactly one of {correct, partial, missing, incorrect}
// and every submitted keyphrase in exactly one of {correct, partial,
// spurious, incorrect}; the same holds for relations across {correct,
// missing, spurious}.
package matcher

import (
	"sort"

	"github.com/jamesainslie/go-agree/corpus"
)

// Category identifies one match outcome bucket.
type Category int

const (
	// CorrectKeyphrase: exact span match with matching label.
	CorrectKeyphrase Category = iota
	// PartialKeyphrase: one-to-one pairing with partial span overlap.
	PartialKeyphrase
	// MissingKeyphrase: gold keyphrase with no counterpart.
	MissingKeyphrase
	// SpuriousKeyphrase: submitted keyphrase with no counterpart.
	SpuriousKeyphrase
	// IncorrectKeyphrase: exact span match with an incompatible label.
	IncorrectKeyphrase
	// CorrectRelation: relation present on both sides over aligned keyphrases.
	CorrectRelation
	// MissingRelation: gold relation with no counterpart.
	MissingRelation
	// SpuriousRelation: submitted relation with no counterpart.
	SpuriousRelation
)

func (c Category) String() string {
	switch c {
	case CorrectKeyphrase:
		return "correct_A"
	case PartialKeyphrase:
		return "partial_A"
	case MissingKeyphrase:
		return "missing_A"
	case SpuriousKeyphrase:
		return "spurious_A"
	case IncorrectKeyphrase:
		return "incorrect_A"
	case CorrectRelation:
		return "correct_B"
	case MissingRelation:
		return "missing_B"
	case SpuriousRelation:
		return "spurious_B"
	}
	return "unknown"
}

// Pair joins a gold keyphrase with its matched submitted counterpart.
type Pair struct {
	Gold      *corpus.Keyphrase
	Submitted *corpus.Keyphrase
}

// Matches holds the outcome of matching one label scope.
type Matches struct {
	Correct   []Pair
	Partial   []Pair
	Missing   []*corpus.Keyphrase
	Spurious  []*corpus.Keyphrase
	Incorrect []Pair

	CorrectRel  []*corpus.Relation
	MissingRel  []*corpus.Relation
	SpuriousRel []*corpus.Relation
}

// Count returns the size of one bucket.
func (m *Matches) Count(c Category) int {
	switch c {
	case CorrectKeyphrase:
		return len(m.Correct)
	case PartialKeyphrase:
		return len(m.Partial)
	case MissingKeyphrase:
		return len(m.Missing)
	case SpuriousKeyphrase:
		return len(m.Spurious)
	case IncorrectKeyphrase:
		return len(m.Incorrect)
	case CorrectRelation:
		return len(m.CorrectRel)
	case MissingRelation:
		return len(m.MissingRel)
	case SpuriousRelation:
		return len(m.SpuriousRel)
	}
	return 0
}

// Keyphrases matches the keyphrases of two collections whose sentences pair
// up by index. Exact span matches with equal labels are correct; exact span
// matches with differing labels are incorrect unless skipIncorrect is set,
// in which case both sides fall through to missing/spurious. Remaining
// same-labeled keyphrases with positive span overlap are paired one-to-one,
// best overlap first. Leftover gold keyphrases are missing, leftover
// submitted ones spurious.
func Keyphrases(gold, submit *corpus.Collection, skipIncorrect bool) *Matches {
	m := &Matches{}

	n := min(gold.Len(), submit.Len())
	for i := 0; i < n; i++ {
		matchSentenceKeyphrases(m, gold.Sentences[i], submit.Sentences[i], skipIncorrect)
	}
	return m
}

func matchSentenceKeyphrases(m *Matches, gold, submit *corpus.Sentence, skipIncorrect bool) {
	matchedGold := make(map[*corpus.Keyphrase]bool)
	matchedSubmit := make(map[*corpus.Keyphrase]bool)

	// Exact span matches first.
	for _, g := range gold.Keyphrases {
		for _, s := range submit.Keyphrases {
			if matchedSubmit[s] || !g.SameSpans(s) {
				continue
			}
			if g.Label == s.Label {
				m.Correct = append(m.Correct, Pair{g, s})
			} else if skipIncorrect {
				continue
			} else {
				m.Incorrect = append(m.Incorrect, Pair{g, s})
			}
			matchedGold[g] = true
			matchedSubmit[s] = true
			break
		}
	}

	// Partial matches: same label, positive overlap, one-to-one, best
	// overlap ratio first.
	type candidate struct {
		gold, submit *corpus.Keyphrase
		score        float64
	}
	var candidates []candidate
	for _, g := range gold.Keyphrases {
		if matchedGold[g] {
			continue
		}
		for _, s := range submit.Keyphrases {
			if matchedSubmit[s] || g.Label != s.Label {
				continue
			}
			intersection, union := corpus.Overlap(g.Spans, s.Spans)
			if intersection > 0 {
				candidates = append(candidates, candidate{g, s, float64(intersection) / float64(union)})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	for _, c := range candidates {
		if matchedGold[c.gold] || matchedSubmit[c.submit] {
			continue
		}
		matchedGold[c.gold] = true
		matchedSubmit[c.submit] = true
		m.Partial = append(m.Partial, Pair{c.gold, c.submit})
	}

	for _, g := range gold.Keyphrases {
		if !matchedGold[g] {
			m.Missing = append(m.Missing, g)
		}
	}
	for _, s := range submit.Keyphrases {
		if !matchedSubmit[s] {
			m.Spurious = append(m.Spurious, s)
		}
	}
}

// RelationConfig controls relation matching.
type RelationConfig struct {
	// SkipSameAs excludes relations carrying the SameAs label from scoring.
	SkipSameAs bool
	// PropagateError counts relations over unaligned keyphrases as missing
	// or spurious on their own side. When false such relations are excluded
	// from scoring entirely.
	PropagateError bool
	// SameAs is the label of the co-reference relation (default "same-as").
	SameAs string
}

// Relations matches the relations of two collections whose sentences pair
// up by index, using the keyphrase alignment already recorded in m. A gold
// relation is correct when a submitted relation with the same label joins
// the aligned counterparts of its endpoints. The relation buckets are filled
// in on m, which is returned.
func Relations(gold, submit *corpus.Collection, m *Matches, cfg RelationConfig) *Matches {
	if cfg.SameAs == "" {
		cfg.SameAs = "same-as"
	}

	aligned := make(map[*corpus.Keyphrase]*corpus.Keyphrase)
	for _, p := range m.Correct {
		aligned[p.Gold] = p.Submitted
	}
	for _, p := range m.Partial {
		aligned[p.Gold] = p.Submitted
	}
	for _, p := range m.Incorrect {
		aligned[p.Gold] = p.Submitted
	}

	n := min(gold.Len(), submit.Len())
	for i := 0; i < n; i++ {
		matchSentenceRelations(m, gold.Sentences[i], submit.Sentences[i], aligned, cfg)
	}
	return m
}

func matchSentenceRelations(m *Matches, gold, submit *corpus.Sentence, aligned map[*corpus.Keyphrase]*corpus.Keyphrase, cfg RelationConfig) {
	consumed := make(map[*corpus.Relation]bool)

	for _, gr := range gold.Relations {
		if cfg.SkipSameAs && gr.Label == cfg.SameAs {
			continue
		}

		origin := aligned[gold.FindKeyphrase(gr.Origin)]
		target := aligned[gold.FindKeyphrase(gr.Target)]
		if origin == nil || target == nil {
			// Endpoint keyphrase never aligned; a relation over it cannot
			// hold on the submitted side.
			if cfg.PropagateError {
				m.MissingRel = append(m.MissingRel, gr)
			}
			continue
		}

		found := false
		for _, sr := range submit.Relations {
			if consumed[sr] || sr.Label != gr.Label {
				continue
			}
			if submit.FindKeyphrase(sr.Origin) == origin && submit.FindKeyphrase(sr.Target) == target {
				consumed[sr] = true
				found = true
				break
			}
		}
		if found {
			m.CorrectRel = append(m.CorrectRel, gr)
		} else {
			m.MissingRel = append(m.MissingRel, gr)
		}
	}

	submitAligned := make(map[*corpus.Keyphrase]bool, len(aligned))
	for _, s := range aligned {
		submitAligned[s] = true
	}

	for _, sr := range submit.Relations {
		if consumed[sr] {
			continue
		}
		if cfg.SkipSameAs && sr.Label == cfg.SameAs {
			continue
		}
		origin := submit.FindKeyphrase(sr.Origin)
		target := submit.FindKeyphrase(sr.Target)
		if !cfg.PropagateError && (!submitAligned[origin] || !submitAligned[target]) {
			continue
		}
		m.SpuriousRel = append(m.SpuriousRel, sr)
	}
}
