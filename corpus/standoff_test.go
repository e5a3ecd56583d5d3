package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeCorpus lays out a single-document corpus directory.
func writeCorpus(t *testing.T, txt, ann string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.txt"), []byte(txt), 0o644); err != nil {
		t.Fatal(err)
	}
	if ann != "" {
		if err := os.WriteFile(filepath.Join(dir, "doc.ann"), []byte(ann), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	dir := writeCorpus(t,
		"El asma afecta las vias.\nLa vacuna previene la infeccion.\n",
		"T1\tConcept 3 7\tasma\n"+
			"T2\tConcept 19 23\tvias\n"+
			"T3\tConcept 28 34\tvacuna\n"+
			"T4\tAction 35 43\tpreviene\n"+
			"R1\ttarget Arg1:T4 Arg2:T3\n"+
			"#1\tAnnotatorNotes T1\tnote to ignore\n",
	)

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if c.Len() != 2 {
		t.Fatalf("got %d sentences, want 2", c.Len())
	}

	first := c.Sentences[0]
	if len(first.Keyphrases) != 2 {
		t.Fatalf("first sentence has %d keyphrases, want 2", len(first.Keyphrases))
	}
	asma := first.FindKeyphrase(1)
	if asma == nil {
		t.Fatal("keyphrase T1 not attached to first sentence")
	}
	if asma.Spans[0] != (Span{3, 7}) {
		t.Errorf("T1 span = %v, want {3 7}", asma.Spans[0])
	}
	if asma.Text != "asma" {
		t.Errorf("T1 text = %q, want %q", asma.Text, "asma")
	}

	second := c.Sentences[1]
	// Offsets in the second sentence are sentence-local.
	vacuna := second.FindKeyphrase(3)
	if vacuna == nil {
		t.Fatal("keyphrase T3 not attached to second sentence")
	}
	if vacuna.Spans[0] != (Span{3, 9}) {
		t.Errorf("T3 span = %v, want {3 9}", vacuna.Spans[0])
	}
	if second.Text[vacuna.Spans[0].Start:vacuna.Spans[0].End] != "vacuna" {
		t.Errorf("T3 does not cover %q in sentence text", "vacuna")
	}

	if len(second.Relations) != 1 {
		t.Fatalf("second sentence has %d relations, want 1", len(second.Relations))
	}
	r := second.Relations[0]
	if r.Label != "target" || r.Origin != 4 || r.Target != 3 {
		t.Errorf("relation = %+v, want target T4 -> T3", r)
	}
}

func TestLoadDiscontinuousKeyphrase(t *testing.T) {
	dir := writeCorpus(t,
		"Los sintomas graves persisten.\n",
		"T1\tConcept 4 12;13 19\tsintomas graves\n",
	)

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	k := c.Sentences[0].FindKeyphrase(1)
	if k == nil {
		t.Fatal("discontinuous keyphrase not loaded")
	}
	want := []Span{{4, 12}, {13, 19}}
	if len(k.Spans) != 2 || k.Spans[0] != want[0] || k.Spans[1] != want[1] {
		t.Errorf("spans = %v, want %v", k.Spans, want)
	}
}

func TestLoadEquivalenceChain(t *testing.T) {
	dir := writeCorpus(t,
		"El virus y el patogeno y el germen coinciden.\n",
		"T1\tConcept 3 8\tvirus\n"+
			"T2\tConcept 14 22\tpatogeno\n"+
			"T3\tConcept 28 34\tgermen\n"+
			"*\tsame-as T1 T2 T3\n",
	)

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	rels := c.Sentences[0].Relations
	if len(rels) != 2 {
		t.Fatalf("got %d relations, want 2 pairwise links", len(rels))
	}
	for _, r := range rels {
		if r.Label != "same-as" {
			t.Errorf("relation label = %q, want same-as", r.Label)
		}
	}
}

func TestLoadMissingAnnFile(t *testing.T) {
	dir := writeCorpus(t, "Una frase sin anotaciones.\n", "")

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if c.Len() != 1 || len(c.Sentences[0].Keyphrases) != 0 {
		t.Errorf("got %d sentences, want 1 unannotated", c.Len())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		txt  string
		ann  string
	}{
		{
			name: "keyphrase crossing sentences",
			txt:  "Frase uno.\nFrase dos.\n",
			ann:  "T1\tConcept 6 16\tuno. Frase\n",
		},
		{
			name: "relation across sentences",
			txt:  "Frase uno.\nFrase dos.\n",
			ann:  "T1\tConcept 0 5\tFrase\nT2\tConcept 11 16\tFrase\nR1\tsame-as Arg1:T1 Arg2:T2\n",
		},
		{
			name: "relation to unknown keyphrase",
			txt:  "Frase uno.\n",
			ann:  "T1\tConcept 0 5\tFrase\nR1\ttarget Arg1:T1 Arg2:T9\n",
		},
		{
			name: "malformed span",
			txt:  "Frase uno.\n",
			ann:  "T1\tConcept 5 0\tesarF\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeCorpus(t, tt.txt, tt.ann)
			if _, err := LoadDir(dir); !errors.Is(err, ErrMalformedAnnotation) {
				t.Errorf("LoadDir() error = %v, want ErrMalformedAnnotation", err)
			}
		})
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("LoadDir() on empty dir: error = %v, want ErrNoDocuments", err)
	}
}

func TestLoadDirOrdersDocuments(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.txt": "Segunda frase.\n",
		"a.txt": "Primera frase.\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if c.Sentences[0].Text != "Primera frase." {
		t.Errorf("first sentence = %q, want documents in name order", c.Sentences[0].Text)
	}
}
