package agree

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/jamesainslie/go-agree/corpus"
	"github.com/jamesainslie/go-agree/matcher"
)

// GlobalLabel is the pseudo-label of the whole-corpus evaluation pass.
const GlobalLabel = "Global"

// Evaluator scores agreement between a gold and a submitted corpus. It
// holds no resources and may be reused across runs.
type Evaluator struct {
	propagateError bool
	sameAsLabel    string
	clean          bool
	logger         *slog.Logger
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Evaluator{
		propagateError: cfg.propagateError,
		sameAsLabel:    cfg.sameAsLabel,
		clean:          cfg.clean,
		logger:         cfg.logger,
	}
}

// LabelResult holds the metrics and the full match outcome for one label
// scope.
type LabelResult struct {
	Label   string
	Metrics Metrics
	Matches *matcher.Matches
}

// Report is the outcome of one evaluation run.
type Report struct {
	RunID   string
	Results []LabelResult
	Dropped []string // sentence texts discarded during synchronization
}

// Result returns the result for one label, or nil.
func (r *Report) Result(label string) *LabelResult {
	for i := range r.Results {
		if r.Results[i].Label == label {
			return &r.Results[i]
		}
	}
	return nil
}

// Run loads both corpora, synchronizes their sentence sequences, and scores
// agreement for every keyphrase label, every relation label, and the corpus
// as a whole, in that order.
func (e *Evaluator) Run(goldDir, submitDir string) (*Report, error) {
	gold, err := e.loadCorpus(goldDir)
	if err != nil {
		return nil, err
	}
	submit, err := e.loadCorpus(submitDir)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString()}
	report.Dropped = coordinate(gold, submit, e.logger)

	// Labels come from gold: a label the reference never uses has no
	// agreement to measure.
	keyphraseLabels := gold.KeyphraseLabels()
	relationLabels := gold.RelationLabels()
	isRelationLabel := make(map[string]bool, len(relationLabels))
	for _, l := range relationLabels {
		isRelationLabel[l] = true
	}

	type scope struct {
		labels []string
		filter func(*corpus.Collection, []string) *corpus.Collection
	}
	scopes := []scope{
		{keyphraseLabels, func(c *corpus.Collection, ls []string) *corpus.Collection {
			return c.FilterKeyphrase(ls...)
		}},
		{relationLabels, func(c *corpus.Collection, ls []string) *corpus.Collection {
			return c.FilterRelation(ls...)
		}},
		{[]string{GlobalLabel}, func(c *corpus.Collection, _ []string) *corpus.Collection {
			return c
		}},
	}

	for _, sc := range scopes {
		for _, label := range sc.labels {
			selector := []string{label, e.sameAsLabel}
			g := sc.filter(gold, selector)
			s := sc.filter(submit, selector)

			m := matcher.Keyphrases(g, s, true)
			matcher.Relations(g, s, m, matcher.RelationConfig{
				SkipSameAs:     label != e.sameAsLabel && isRelationLabel[label],
				PropagateError: e.propagateError,
				SameAs:         e.sameAsLabel,
			})

			report.Results = append(report.Results, LabelResult{
				Label:   label,
				Metrics: ComputeMetrics(m),
				Matches: m,
			})
		}
	}

	return report, nil
}

func (e *Evaluator) loadCorpus(dir string) (*corpus.Collection, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, dir)
		}
		return nil, fmt.Errorf("checking corpus dir: %w", err)
	}

	c, err := corpus.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusLoad, err)
	}

	if e.clean {
		e.cleanCorpus(c)
	}
	return c, nil
}

// cleanCorpus merges overlapping keyphrases and removes duplicated
// relations in place, reporting every action. Cleaning must converge in one
// round; leftovers afterwards mean the merge logic itself is broken.
func (e *Evaluator) cleanCorpus(c *corpus.Collection) {
	for _, s := range c.Sentences {
		if groups := s.OverlappingKeyphrases(); len(groups) > 0 {
			for _, group := range groups {
				texts := make([]string, len(group))
				for i, k := range group {
					texts[i] = k.Text
				}
				e.logger.Warn("merging overlapping keyphrases", "sentence", s.Text, "keyphrases", texts)
			}
			s.MergeOverlappingKeyphrases()
			if len(s.OverlappingKeyphrases()) > 0 {
				panic("agree: overlapping keyphrases survived merging")
			}
		}

		if dups := s.DupRelations(); len(dups) > 0 {
			labels := make([]string, len(dups))
			for i, r := range dups {
				labels[i] = r.Label
			}
			e.logger.Warn("removing duplicated relations", "sentence", s.Text, "relations", labels)
			s.RemoveDupRelations()
			if len(s.DupRelations()) > 0 {
				panic("agree: duplicated relations survived removal")
			}
		}
	}
}
