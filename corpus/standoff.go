package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LoadDir loads every .txt document in dir, in name order, into a single
// collection. Each document may have a companion .ann standoff file with its
// annotations; a document without one contributes unannotated sentences.
func LoadDir(dir string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	c := &Collection{}
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		if err := c.Load(filepath.Join(dir, entry.Name())); err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}
	return c, nil
}

// Load appends the sentences of one document to the collection. The .txt
// file holds one sentence per line; annotations come from the companion
// .ann file, whose offsets index the document's full character stream.
func (c *Collection) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	text := string(data)
	sentences, starts := splitSentences(text)

	annPath := strings.TrimSuffix(path, ".txt") + ".ann"
	annData, err := os.ReadFile(annPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.Sentences = append(c.Sentences, sentences...)
			return nil
		}
		return fmt.Errorf("read annotations: %w", err)
	}

	if err := attachAnnotations(string(annData), sentences, starts); err != nil {
		return err
	}
	for _, s := range sentences {
		s.SortKeyphrases()
	}
	c.Sentences = append(c.Sentences, sentences...)
	return nil
}

// splitSentences breaks a document into per-line sentences, returning each
// sentence and its start offset in the document character stream. Blank
// lines keep their place in the offset accounting but yield no sentence.
func splitSentences(text string) ([]*Sentence, []int) {
	var sentences []*Sentence
	var starts []int

	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			sentences = append(sentences, &Sentence{Text: line})
			starts = append(starts, offset)
		}
		offset += len(line) + 1
	}
	return sentences, starts
}

// attachAnnotations parses standoff lines and attaches each annotation to
// the sentence it falls inside, converting document offsets to
// sentence-local ones.
//
// Supported lines:
//
//	T<id> <TAB> Label start end[;start end]... <TAB> text
//	R<id> <TAB> Label Arg1:T<id> Arg2:T<id>
//	*     <TAB> Label T<id> T<id> [T<id>...]
//
// Lines starting with # (notes) or A (attributes) are ignored.
func attachAnnotations(ann string, sentences []*Sentence, starts []int) error {
	sentenceOf := make(map[int]int) // keyphrase ID -> sentence index

	lines := strings.Split(ann, "\n")
	for _, line := range lines {
		if !strings.HasPrefix(line, "T") {
			continue
		}
		if err := parseKeyphrase(line, sentences, starts, sentenceOf); err != nil {
			return err
		}
	}
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "R"):
			if err := parseRelation(line, sentences, sentenceOf); err != nil {
				return err
			}
		case strings.HasPrefix(line, "*"):
			if err := parseEquivalence(line, sentences, sentenceOf); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseKeyphrase(line string, sentences []*Sentence, starts []int, sentenceOf map[int]int) error {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 2 {
		return fmt.Errorf("%w: keyphrase line %q", ErrMalformedAnnotation, line)
	}

	id, err := strconv.Atoi(strings.TrimPrefix(fields[0], "T"))
	if err != nil {
		return fmt.Errorf("%w: keyphrase ID %q", ErrMalformedAnnotation, fields[0])
	}

	label, rest, ok := strings.Cut(fields[1], " ")
	if !ok {
		return fmt.Errorf("%w: keyphrase T%d has no spans", ErrMalformedAnnotation, id)
	}

	var spans []Span
	for _, frag := range strings.Split(rest, ";") {
		startStr, endStr, ok := strings.Cut(strings.TrimSpace(frag), " ")
		if !ok {
			return fmt.Errorf("%w: keyphrase T%d span %q", ErrMalformedAnnotation, id, frag)
		}
		start, err1 := strconv.Atoi(startStr)
		end, err2 := strconv.Atoi(endStr)
		if err1 != nil || err2 != nil || end <= start {
			return fmt.Errorf("%w: keyphrase T%d span %q", ErrMalformedAnnotation, id, frag)
		}
		spans = append(spans, Span{start, end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	idx, ok := sentenceIndex(spans, sentences, starts)
	if !ok {
		return fmt.Errorf("%w: keyphrase T%d crosses a sentence boundary", ErrMalformedAnnotation, id)
	}

	local := make([]Span, len(spans))
	for i, s := range spans {
		local[i] = Span{s.Start - starts[idx], s.End - starts[idx]}
	}

	k := &Keyphrase{ID: id, Label: label, Spans: local}
	if len(fields) == 3 {
		k.Text = fields[2]
	} else {
		k.Text = spanText(sentences[idx].Text, local)
	}

	sentences[idx].Keyphrases = append(sentences[idx].Keyphrases, k)
	sentenceOf[id] = idx
	return nil
}

// sentenceIndex finds the sentence whose document range contains every
// fragment of the span set.
func sentenceIndex(spans []Span, sentences []*Sentence, starts []int) (int, bool) {
	for i, s := range sentences {
		lo, hi := starts[i], starts[i]+len(s.Text)
		inside := true
		for _, sp := range spans {
			if sp.Start < lo || sp.End > hi {
				inside = false
				break
			}
		}
		if inside {
			return i, true
		}
	}
	return 0, false
}

func spanText(text string, spans []Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = text[s.Start:s.End]
	}
	return strings.Join(parts, " ")
}

func parseRelation(line string, sentences []*Sentence, sentenceOf map[int]int) error {
	fields := strings.SplitN(line, "\t", 2)
	if len(fields) != 2 {
		return fmt.Errorf("%w: relation line %q", ErrMalformedAnnotation, line)
	}

	parts := strings.Fields(fields[1])
	if len(parts) != 3 {
		return fmt.Errorf("%w: relation %q", ErrMalformedAnnotation, fields[1])
	}

	origin, err1 := argID(parts[1], "Arg1:")
	target, err2 := argID(parts[2], "Arg2:")
	if err1 != nil {
		return fmt.Errorf("relation %s: %w", fields[0], err1)
	}
	if err2 != nil {
		return fmt.Errorf("relation %s: %w", fields[0], err2)
	}

	return addRelation(parts[0], origin, target, fields[0], sentences, sentenceOf)
}

func parseEquivalence(line string, sentences []*Sentence, sentenceOf map[int]int) error {
	fields := strings.SplitN(line, "\t", 2)
	if len(fields) != 2 {
		return fmt.Errorf("%w: equivalence line %q", ErrMalformedAnnotation, line)
	}

	parts := strings.Fields(fields[1])
	if len(parts) < 3 {
		return fmt.Errorf("%w: equivalence %q", ErrMalformedAnnotation, fields[1])
	}

	// A chain of n keyphrases yields n-1 pairwise links.
	for i := 2; i < len(parts); i++ {
		origin, err1 := argID(parts[i-1], "")
		target, err2 := argID(parts[i], "")
		if err1 != nil {
			return err1
		}
		if err2 != nil {
			return err2
		}
		if err := addRelation(parts[0], origin, target, "*", sentences, sentenceOf); err != nil {
			return err
		}
	}
	return nil
}

func argID(field, prefix string) (int, error) {
	ref := strings.TrimPrefix(field, prefix)
	id, err := strconv.Atoi(strings.TrimPrefix(ref, "T"))
	if err != nil {
		return 0, fmt.Errorf("%w: keyphrase reference %q", ErrMalformedAnnotation, field)
	}
	return id, nil
}

func addRelation(label string, origin, target int, ref string, sentences []*Sentence, sentenceOf map[int]int) error {
	oIdx, ok1 := sentenceOf[origin]
	tIdx, ok2 := sentenceOf[target]
	if !ok1 || !ok2 {
		return fmt.Errorf("%w: relation %s references unknown keyphrase", ErrMalformedAnnotation, ref)
	}
	if oIdx != tIdx {
		return fmt.Errorf("%w: relation %s joins keyphrases of different sentences", ErrMalformedAnnotation, ref)
	}

	sentences[oIdx].Relations = append(sentences[oIdx].Relations, &Relation{
		Label:  label,
		Origin: origin,
		Target: target,
	})
	return nil
}
