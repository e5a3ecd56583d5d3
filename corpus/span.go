package corpus

import "sort"

// Span is a half-open [Start, End) character interval over a sentence's
// text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlap computes the intersection and union length of two disjoint span
// sets. A fragmented keyphrase is measured as the union of its fragments, so
// the result does not depend on how either side is split into spans.
//
// The sweep walks all endpoints of both sets in ascending (offset, side)
// order, tracking with one boolean per side whether the sweep is currently
// inside that side's spans. Because each side's spans are disjoint, its
// sorted boundary list alternates open/close, so crossing any endpoint of a
// side flips that side's flag. The length accumulated between consecutive
// endpoints counts toward the union when either flag is set and toward the
// intersection when both are. Touching spans such as (2,8) and (8,10) share
// only a boundary point and contribute no intersection length.
func Overlap(a, b []Span) (intersection, union int) {
	type endpoint struct {
		offset int
		side   int
	}

	points := make([]endpoint, 0, 2*(len(a)+len(b)))
	for _, s := range a {
		points = append(points, endpoint{s.Start, 0}, endpoint{s.End, 0})
	}
	for _, s := range b {
		points = append(points, endpoint{s.Start, 1}, endpoint{s.End, 1})
	}

	sort.SliceStable(points, func(i, j int) bool {
		if points[i].offset != points[j].offset {
			return points[i].offset < points[j].offset
		}
		return points[i].side < points[j].side
	})

	var inside [2]bool
	last := 0
	for _, p := range points {
		delta := p.offset - last
		if inside[0] && inside[1] {
			intersection += delta
		}
		if inside[0] || inside[1] {
			union += delta
		}
		last = p.offset
		inside[p.side] = !inside[p.side]
	}

	return intersection, union
}

// coalesce sorts spans and merges overlapping or touching neighbors into a
// minimal disjoint span set.
func coalesce(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	out := sorted[:1]
	for _, s := range sorted[1:] {
		lastIdx := len(out) - 1
		if s.Start <= out[lastIdx].End {
			if s.End > out[lastIdx].End {
				out[lastIdx].End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
