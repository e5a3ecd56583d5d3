package agree

import (
	"log/slog"

	"github.com/jamesainslie/go-agree/corpus"
)

// coordinate aligns two collections that annotate the same sentence
// sequence but may have drifted apart by dropped or duplicated sentences.
// It walks both in lock-step, trimming mismatches destructively until the
// remaining sentences pair up by identical text, then truncates the longer
// side. Returns the texts of every dropped sentence, each also logged.
//
// The repair is a greedy single pass with one-step lookahead: when texts at
// the cursor differ, an extra sentence on one side is detected by the other
// side's current text matching its next one. When neither lookahead matches,
// both cursor sentences are treated as spurious and dropped together, which
// can discard legitimate content if the corpora diverge by more than one
// sentence in a row. That limitation is accepted in exchange for never
// failing: every iteration shrinks at least one side, so the pass always
// converges.
func coordinate(gold, submit *corpus.Collection, logger *slog.Logger) []string {
	var dropped []string
	drop := func(c *corpus.Collection, i int, side string) {
		text := c.Sentences[i].Text
		logger.Warn("dropped sentence", "side", side, "text", text)
		dropped = append(dropped, text)
		c.Sentences = append(c.Sentences[:i], c.Sentences[i+1:]...)
	}

	i := 0
	for i < min(gold.Len(), submit.Len()) {
		if gold.Sentences[i].Text == submit.Sentences[i].Text {
			i++
			continue
		}
		switch {
		case i+1 < gold.Len() && gold.Sentences[i+1].Text == submit.Sentences[i].Text:
			drop(gold, i, "gold")
		case i+1 < submit.Len() && submit.Sentences[i+1].Text == gold.Sentences[i].Text:
			drop(submit, i, "submitted")
		default:
			drop(gold, i, "gold")
			drop(submit, i, "submitted")
		}
	}

	for gold.Len() > submit.Len() {
		drop(gold, gold.Len()-1, "gold")
	}
	for submit.Len() > gold.Len() {
		drop(submit, submit.Len()-1, "submitted")
	}

	return dropped
}
