package corpus

import "sort"

// disjointSet groups keyphrases transitively: two keyphrases end up in the
// same group when a chain of pairwise overlaps connects them.
type disjointSet struct {
	parent map[int]int
}

func newDisjointSet() *disjointSet {
	return &disjointSet{parent: make(map[int]int)}
}

func (d *disjointSet) find(x int) int {
	p, ok := d.parent[x]
	if !ok {
		d.parent[x] = x
		return x
	}
	if p != x {
		p = d.find(p)
		d.parent[x] = p
	}
	return p
}

func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra != rb {
		d.parent[rb] = ra
	}
}

// OverlappingKeyphrases returns groups of same-labeled keyphrases whose span
// sets overlap with positive measure. Each returned group has at least two
// members, ordered as they appear in the sentence.
func (s *Sentence) OverlappingKeyphrases() [][]*Keyphrase {
	set := newDisjointSet()
	for i, a := range s.Keyphrases {
		set.find(a.ID)
		for _, b := range s.Keyphrases[i+1:] {
			if a.Label != b.Label {
				continue
			}
			if intersection, _ := Overlap(a.Spans, b.Spans); intersection > 0 {
				set.union(a.ID, b.ID)
			}
		}
	}

	byRoot := make(map[int][]*Keyphrase)
	for _, k := range s.Keyphrases {
		root := set.find(k.ID)
		byRoot[root] = append(byRoot[root], k)
	}

	var groups [][]*Keyphrase
	for _, k := range s.Keyphrases {
		group := byRoot[set.find(k.ID)]
		if len(group) > 1 && group[0] == k {
			groups = append(groups, group)
		}
	}
	return groups
}

// MergeOverlappingKeyphrases collapses every overlap group into a single
// keyphrase covering the union of the group's spans. Relations referencing a
// merged keyphrase are remapped to the survivor.
func (s *Sentence) MergeOverlappingKeyphrases() {
	for _, group := range s.OverlappingKeyphrases() {
		survivor := group[0]
		remap := make(map[int]bool)

		var spans []Span
		for _, k := range group {
			spans = append(spans, k.Spans...)
			if k != survivor {
				remap[k.ID] = true
			}
		}
		survivor.Spans = coalesce(spans)
		survivor.Text = spanText(s.Text, survivor.Spans)

		kept := s.Keyphrases[:0]
		for _, k := range s.Keyphrases {
			if !remap[k.ID] {
				kept = append(kept, k)
			}
		}
		s.Keyphrases = kept

		for _, r := range s.Relations {
			if remap[r.Origin] {
				r.Origin = survivor.ID
			}
			if remap[r.Target] {
				r.Target = survivor.ID
			}
		}
	}
}

// relationKey identifies a relation up to duplication.
type relationKey struct {
	label          string
	origin, target int
}

// DupRelations returns the redundant copies of duplicated relations: for
// each (label, origin, target) triple annotated more than once, every copy
// after the first.
func (s *Sentence) DupRelations() []*Relation {
	seen := make(map[relationKey]bool)
	var dups []*Relation
	for _, r := range s.Relations {
		key := relationKey{r.Label, r.Origin, r.Target}
		if seen[key] {
			dups = append(dups, r)
			continue
		}
		seen[key] = true
	}
	return dups
}

// RemoveDupRelations drops every redundant relation copy, keeping first
// occurrences in sentence order.
func (s *Sentence) RemoveDupRelations() {
	seen := make(map[relationKey]bool)
	kept := s.Relations[:0]
	for _, r := range s.Relations {
		key := relationKey{r.Label, r.Origin, r.Target}
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, r)
	}
	s.Relations = kept
}

// SortKeyphrases orders the sentence's keyphrases by first span position,
// then ID. Loading preserves annotation-file order; sorting gives filters
// and matchers a stable positional order to iterate.
func (s *Sentence) SortKeyphrases() {
	sort.SliceStable(s.Keyphrases, func(i, j int) bool {
		a, b := s.Keyphrases[i], s.Keyphrases[j]
		if len(a.Spans) > 0 && len(b.Spans) > 0 && a.Spans[0].Start != b.Spans[0].Start {
			return a.Spans[0].Start < b.Spans[0].Start
		}
		return a.ID < b.ID
	})
}
