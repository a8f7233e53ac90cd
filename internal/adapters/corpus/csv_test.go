package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpusFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faq.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing corpus file: %v", err)
	}
	return path
}

func TestCSVLoader_Load(t *testing.T) {
	path := writeCorpusFile(t, strings.Join([]string{
		"question,answer,intent",
		`"How do I track my order?","Use the Track Order page.",delivery`,
		`"What payment methods do you accept?","UPI, cards and wallets.",payment`,
	}, "\n"))

	c, err := NewCSVLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("got %d entries, want 2", c.Len())
	}
	if c.Entries[0].Question != "How do I track my order?" {
		t.Errorf("wrong question: %q", c.Entries[0].Question)
	}
	if c.Entries[1].Answer != "UPI, cards and wallets." {
		t.Errorf("wrong answer: %q", c.Entries[1].Answer)
	}
	if c.Entries[0].Intent != "delivery" {
		t.Errorf("wrong intent: %q", c.Entries[0].Intent)
	}
}

func TestCSVLoader_CaseInsensitiveHeaders(t *testing.T) {
	path := writeCorpusFile(t, strings.Join([]string{
		"Question,ANSWER",
		"q1,a1",
	}, "\n"))

	c, err := NewCSVLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 1 || c.Entries[0].Answer != "a1" {
		t.Errorf("unexpected corpus: %+v", c.Entries)
	}
}

func TestCSVLoader_SkipsIncompleteRows(t *testing.T) {
	path := writeCorpusFile(t, strings.Join([]string{
		"question,answer",
		"q1,a1",
		",missing question",
		"missing answer,",
		"q2,a2",
	}, "\n"))

	c, err := NewCSVLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("got %d entries, want 2", c.Len())
	}
}

func TestCSVLoader_MissingColumns(t *testing.T) {
	path := writeCorpusFile(t, "title,body\nq1,a1\n")

	if _, err := NewCSVLoader().Load(context.Background(), path); err == nil {
		t.Error("expected error for missing question/answer columns")
	}
}

func TestCSVLoader_EmptyCorpus(t *testing.T) {
	path := writeCorpusFile(t, "question,answer\n")

	if _, err := NewCSVLoader().Load(context.Background(), path); err == nil {
		t.Error("expected error for corpus with no rows")
	}
}

func TestCSVLoader_MissingFile(t *testing.T) {
	if _, err := NewCSVLoader().Load(context.Background(), "does/not/exist.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}
