package matcher

import (
	"testing"

	"github.com/jamesainslie/go-agree/corpus"
)

// collection wraps sentences into a Collection.
func collection(sentences ...*corpus.Sentence) *corpus.Collection {
	return &corpus.Collection{Sentences: sentences}
}

func TestKeyphrasesExactAndPartial(t *testing.T) {
	gold := collection(&corpus.Sentence{
		Text: "some sentence text here",
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},
			{ID: 2, Label: "Concept", Spans: []corpus.Span{{Start: 6, End: 10}}},
			{ID: 3, Label: "Concept", Spans: []corpus.Span{{Start: 12, End: 16}}},
		},
	})
	submit := collection(&corpus.Sentence{
		Text: "some sentence text here",
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},   // exact
			{ID: 2, Label: "Concept", Spans: []corpus.Span{{Start: 7, End: 10}}},  // partial
			{ID: 4, Label: "Concept", Spans: []corpus.Span{{Start: 18, End: 22}}}, // spurious
		},
	})

	m := Keyphrases(gold, submit, true)

	if len(m.Correct) != 1 || m.Correct[0].Gold.ID != 1 {
		t.Errorf("Correct = %v, want exactly gold T1", m.Correct)
	}
	if len(m.Partial) != 1 || m.Partial[0].Gold.ID != 2 || m.Partial[0].Submitted.ID != 2 {
		t.Errorf("Partial = %v, want gold T2 paired with submitted T2", m.Partial)
	}
	if len(m.Missing) != 1 || m.Missing[0].ID != 3 {
		t.Errorf("Missing = %v, want gold T3", m.Missing)
	}
	if len(m.Spurious) != 1 || m.Spurious[0].ID != 4 {
		t.Errorf("Spurious = %v, want submitted T4", m.Spurious)
	}
	if len(m.Incorrect) != 0 {
		t.Errorf("Incorrect = %v, want empty", m.Incorrect)
	}
}

func TestKeyphrasesBucketPartition(t *testing.T) {
	// Every gold keyphrase lands in exactly one gold-side bucket, every
	// submitted one in exactly one submitted-side bucket.
	gold := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},
			{ID: 2, Label: "Action", Spans: []corpus.Span{{Start: 6, End: 10}}},
			{ID: 3, Label: "Concept", Spans: []corpus.Span{{Start: 11, End: 15}}},
		},
	})
	submit := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},
			{ID: 2, Label: "Action", Spans: []corpus.Span{{Start: 8, End: 12}}},
		},
	})

	m := Keyphrases(gold, submit, true)

	goldSide := len(m.Correct) + len(m.Partial) + len(m.Missing) + len(m.Incorrect)
	if goldSide != 3 {
		t.Errorf("gold-side bucket total = %d, want 3", goldSide)
	}
	submitSide := len(m.Correct) + len(m.Partial) + len(m.Spurious) + len(m.Incorrect)
	if submitSide != 2 {
		t.Errorf("submitted-side bucket total = %d, want 2", submitSide)
	}
}

func TestKeyphrasesIncorrect(t *testing.T) {
	gold := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},
		},
	})
	submit := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Action", Spans: []corpus.Span{{Start: 0, End: 5}}},
		},
	})

	m := Keyphrases(gold, submit, false)
	if len(m.Incorrect) != 1 || len(m.Missing) != 0 || len(m.Spurious) != 0 {
		t.Errorf("skipIncorrect=false: Incorrect=%d Missing=%d Spurious=%d, want 1 0 0",
			len(m.Incorrect), len(m.Missing), len(m.Spurious))
	}

	m = Keyphrases(gold, submit, true)
	if len(m.Incorrect) != 0 || len(m.Missing) != 1 || len(m.Spurious) != 1 {
		t.Errorf("skipIncorrect=true: Incorrect=%d Missing=%d Spurious=%d, want 0 1 1",
			len(m.Incorrect), len(m.Missing), len(m.Spurious))
	}
}

func TestKeyphrasesBestOverlapWins(t *testing.T) {
	// One submitted keyphrase overlaps two gold ones; the pairing must pick
	// the larger overlap ratio.
	gold := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 4}}},
			{ID: 2, Label: "Concept", Spans: []corpus.Span{{Start: 3, End: 10}}},
		},
	})
	submit := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 3, End: 9}}},
		},
	})

	m := Keyphrases(gold, submit, true)

	if len(m.Partial) != 1 || m.Partial[0].Gold.ID != 2 {
		t.Fatalf("Partial = %v, want submitted T1 paired with gold T2", m.Partial)
	}
	if len(m.Missing) != 1 || m.Missing[0].ID != 1 {
		t.Errorf("Missing = %v, want gold T1", m.Missing)
	}
}

func relationFixtures() (*corpus.Collection, *corpus.Collection) {
	gold := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},
			{ID: 2, Label: "Action", Spans: []corpus.Span{{Start: 6, End: 10}}},
			{ID: 3, Label: "Concept", Spans: []corpus.Span{{Start: 11, End: 16}}},
		},
		Relations: []*corpus.Relation{
			{Label: "subject", Origin: 2, Target: 1},
			{Label: "target", Origin: 2, Target: 3},
			{Label: "same-as", Origin: 1, Target: 3},
		},
	})
	submit := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},
			{ID: 2, Label: "Action", Spans: []corpus.Span{{Start: 6, End: 10}}},
			// Gold T3 has no counterpart.
		},
		Relations: []*corpus.Relation{
			{Label: "subject", Origin: 2, Target: 1},
			{Label: "target", Origin: 2, Target: 1}, // wrong endpoint
		},
	})
	return gold, submit
}

func TestRelationsPropagateError(t *testing.T) {
	gold, submit := relationFixtures()

	m := Keyphrases(gold, submit, true)
	Relations(gold, submit, m, RelationConfig{PropagateError: true})

	// subject matches; target misses (gold T3 unaligned); same-as misses
	// for the same reason; submitted "target" over aligned endpoints is
	// spurious.
	if len(m.CorrectRel) != 1 || m.CorrectRel[0].Label != "subject" {
		t.Errorf("CorrectRel = %v, want only subject", m.CorrectRel)
	}
	if len(m.MissingRel) != 2 {
		t.Errorf("MissingRel = %v, want target and same-as", m.MissingRel)
	}
	if len(m.SpuriousRel) != 1 || m.SpuriousRel[0].Label != "target" {
		t.Errorf("SpuriousRel = %v, want the stray target", m.SpuriousRel)
	}
}

func TestRelationsIsolateErrors(t *testing.T) {
	gold, submit := relationFixtures()

	m := Keyphrases(gold, submit, true)
	Relations(gold, submit, m, RelationConfig{PropagateError: false})

	// Relations over the unaligned gold T3 are excluded from scoring.
	if len(m.CorrectRel) != 1 {
		t.Errorf("CorrectRel = %v, want only subject", m.CorrectRel)
	}
	if len(m.MissingRel) != 0 {
		t.Errorf("MissingRel = %v, want empty when not propagating", m.MissingRel)
	}
	if len(m.SpuriousRel) != 1 {
		t.Errorf("SpuriousRel = %v, want the stray target", m.SpuriousRel)
	}
}

func TestRelationsSkipSameAs(t *testing.T) {
	gold, submit := relationFixtures()

	m := Keyphrases(gold, submit, true)
	Relations(gold, submit, m, RelationConfig{SkipSameAs: true, PropagateError: true})

	for _, r := range m.MissingRel {
		if r.Label == "same-as" {
			t.Error("same-as relation scored despite SkipSameAs")
		}
	}
	if len(m.MissingRel) != 1 {
		t.Errorf("MissingRel = %v, want only target", m.MissingRel)
	}
}

func TestRelationsOverPartialMatches(t *testing.T) {
	// A relation holds when its endpoints aligned partially.
	gold := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 1, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},
			{ID: 2, Label: "Concept", Spans: []corpus.Span{{Start: 6, End: 10}}},
		},
		Relations: []*corpus.Relation{
			{Label: "same-as", Origin: 1, Target: 2},
		},
	})
	submit := collection(&corpus.Sentence{
		Keyphrases: []*corpus.Keyphrase{
			{ID: 7, Label: "Concept", Spans: []corpus.Span{{Start: 0, End: 5}}},
			{ID: 8, Label: "Concept", Spans: []corpus.Span{{Start: 7, End: 10}}},
		},
		Relations: []*corpus.Relation{
			{Label: "same-as", Origin: 7, Target: 8},
		},
	})

	m := Keyphrases(gold, submit, true)
	Relations(gold, submit, m, RelationConfig{PropagateError: true})

	if len(m.CorrectRel) != 1 {
		t.Errorf("CorrectRel = %v, want the same-as link over a partial match", m.CorrectRel)
	}
}

func TestCategoryString(t *testing.T) {
	categories := []Category{
		CorrectKeyphrase, PartialKeyphrase, MissingKeyphrase, SpuriousKeyphrase,
		IncorrectKeyphrase, CorrectRelation, MissingRelation, SpuriousRelation,
	}
	seen := make(map[string]bool)
	for _, c := range categories {
		s := c.String()
		if s == "unknown" || seen[s] {
			t.Errorf("Category(%d).String() = %q", c, s)
		}
		seen[s] = true
	}
}

func TestMatchesCount(t *testing.T) {
	m := &Matches{
		Correct: []Pair{{}},
		Missing: []*corpus.Keyphrase{{}, {}},
	}
	if m.Count(CorrectKeyphrase) != 1 {
		t.Errorf("Count(CorrectKeyphrase) = %d, want 1", m.Count(CorrectKeyphrase))
	}
	if m.Count(MissingKeyphrase) != 2 {
		t.Errorf("Count(MissingKeyphrase) = %d, want 2", m.Count(MissingKeyphrase))
	}
	if m.Count(SpuriousRelation) != 0 {
		t.Errorf("Count(SpuriousRelation) = %d, want 0", m.Count(SpuriousRelation))
	}
}
