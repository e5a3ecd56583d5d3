// Package corpus defines the annotated-corpus data model shared by the
// agreement scorer: sentences carrying labeled keyphrases (possibly
// discontinuous text spans) and labeled directed relations between them.
// Corpora are loaded from directories of plain-text documents with brat-style
// standoff annotation files.
package corpus

import "sort"

// Keyphrase is a labeled, possibly discontinuous annotation within one
// sentence. Spans hold sentence-local character offsets in ascending order
// and do not overlap each other.
type Keyphrase struct {
	ID    int
	Label string
	Text  string
	Spans []Span
}

// SpanLen returns the total number of characters covered by the keyphrase.
func (k *Keyphrase) SpanLen() int {
	n := 0
	for _, s := range k.Spans {
		n += s.Len()
	}
	return n
}

// SameSpans reports whether both keyphrases cover exactly the same spans.
func (k *Keyphrase) SameSpans(other *Keyphrase) bool {
	if len(k.Spans) != len(other.Spans) {
		return false
	}
	for i, s := range k.Spans {
		if s != other.Spans[i] {
			return false
		}
	}
	return true
}

// Relation is a labeled directed link between two keyphrases of the same
// sentence, referenced by keyphrase ID.
type Relation struct {
	Label  string
	Origin int
	Target int
}

// Sentence is one annotated sentence: its raw text plus the keyphrases and
// relations annotated on it.
type Sentence struct {
	Text       string
	Keyphrases []*Keyphrase
	Relations  []*Relation
}

// FindKeyphrase returns the keyphrase with the given ID, or nil.
func (s *Sentence) FindKeyphrase(id int) *Keyphrase {
	for _, k := range s.Keyphrases {
		if k.ID == id {
			return k
		}
	}
	return nil
}

// Collection is an ordered sequence of sentences loaded from one corpus
// directory (gold or submitted).
type Collection struct {
	Sentences []*Sentence
}

// Len returns the number of sentences in the collection.
func (c *Collection) Len() int {
	return len(c.Sentences)
}

// KeyphraseLabels returns the sorted distinct keyphrase labels present in
// the collection.
func (c *Collection) KeyphraseLabels() []string {
	seen := make(map[string]bool)
	for _, s := range c.Sentences {
		for _, k := range s.Keyphrases {
			seen[k.Label] = true
		}
	}
	return sortedKeys(seen)
}

// RelationLabels returns the sorted distinct relation labels present in the
// collection.
func (c *Collection) RelationLabels() []string {
	seen := make(map[string]bool)
	for _, s := range c.Sentences {
		for _, r := range s.Relations {
			seen[r.Label] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilterKeyphrase returns a collection view restricted to keyphrases whose
// label is one of labels. Relations are kept when their label is also in
// labels and both endpoint keyphrases survive. The receiver is not modified;
// kept keyphrases and relations are shared, not copied.
func (c *Collection) FilterKeyphrase(labels ...string) *Collection {
	want := labelSet(labels)
	out := &Collection{Sentences: make([]*Sentence, 0, len(c.Sentences))}

	for _, s := range c.Sentences {
		fs := &Sentence{Text: s.Text}
		kept := make(map[int]bool)
		for _, k := range s.Keyphrases {
			if want[k.Label] {
				fs.Keyphrases = append(fs.Keyphrases, k)
				kept[k.ID] = true
			}
		}
		for _, r := range s.Relations {
			if want[r.Label] && kept[r.Origin] && kept[r.Target] {
				fs.Relations = append(fs.Relations, r)
			}
		}
		out.Sentences = append(out.Sentences, fs)
	}
	return out
}

// FilterRelation returns a collection view restricted to relations whose
// label is one of labels, together with their endpoint keyphrases. The
// receiver is not modified; kept keyphrases and relations are shared, not
// copied.
func (c *Collection) FilterRelation(labels ...string) *Collection {
	want := labelSet(labels)
	out := &Collection{Sentences: make([]*Sentence, 0, len(c.Sentences))}

	for _, s := range c.Sentences {
		fs := &Sentence{Text: s.Text}
		endpoints := make(map[int]bool)
		for _, r := range s.Relations {
			if want[r.Label] {
				fs.Relations = append(fs.Relations, r)
				endpoints[r.Origin] = true
				endpoints[r.Target] = true
			}
		}
		for _, k := range s.Keyphrases {
			if endpoints[k.ID] {
				fs.Keyphrases = append(fs.Keyphrases, k)
			}
		}
		out.Sentences = append(out.Sentences, fs)
	}
	return out
}

func labelSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return set
}
