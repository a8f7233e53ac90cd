package usecases

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/datadecoders/shopbot-go/internal/domain/entities"
)

// stubEmbedder implements ports.EmbeddingService with fixed vectors.
type stubEmbedder struct {
	vectors map[string][]float32
	def     []float32
	err     error
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return e.def, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func testCorpus() *entities.Corpus {
	return &entities.Corpus{Entries: []entities.FAQEntry{
		{Question: "do you gift wrap orders", Answer: "Yes, gift wrap is available at checkout."},
		{Question: "do you sell in bulk", Answer: "Bulk pricing is available for registered resellers."},
	}}
}

func TestIndexUseCase_UnavailableBeforeBuild(t *testing.T) {
	uc := NewIndexUseCase(&stubEmbedder{}, zerolog.Nop())

	if uc.Available() {
		t.Error("index should not be available before Build")
	}
	_, _, err := uc.Search(context.Background(), "anything")
	if !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Search error = %v, want ErrIndexUnavailable", err)
	}
}

func TestIndexUseCase_BuildAndSearch(t *testing.T) {
	emb := &stubEmbedder{
		vectors: map[string][]float32{
			"do you gift wrap orders": {1, 0, 0},
			"do you sell in bulk":     {0, 1, 0},
			"gift wrap please":        {0.9, 0.1, 0},
		},
		def: []float32{0, 0, 1},
	}
	uc := NewIndexUseCase(emb, zerolog.Nop())

	if err := uc.Build(context.Background(), testCorpus()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !uc.Available() {
		t.Fatal("index should be available after Build")
	}

	entry, score, err := uc.Search(context.Background(), "gift wrap please")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if entry.Answer != "Yes, gift wrap is available at checkout." {
		t.Errorf("wrong entry returned: %+v", entry)
	}
	if score < 0.9 {
		t.Errorf("score = %v, want >= 0.9", score)
	}
}

func TestIndexUseCase_TieBreaksToLowestIndex(t *testing.T) {
	// Both corpus questions embed identically; argmax must keep the first.
	emb := &stubEmbedder{def: []float32{1, 0}}
	uc := NewIndexUseCase(emb, zerolog.Nop())

	if err := uc.Build(context.Background(), testCorpus()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	entry, _, err := uc.Search(context.Background(), "whatever")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if entry.Question != "do you gift wrap orders" {
		t.Errorf("tie should resolve to lowest index, got %q", entry.Question)
	}
}

func TestIndexUseCase_BuildFailureKeepsOldIndex(t *testing.T) {
	emb := &stubEmbedder{def: []float32{1, 0}}
	uc := NewIndexUseCase(emb, zerolog.Nop())

	if err := uc.Build(context.Background(), testCorpus()); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}

	emb.err = errors.New("model down")
	if err := uc.Build(context.Background(), testCorpus()); err == nil {
		t.Fatal("second Build should fail")
	}
	if !uc.Available() {
		t.Error("old index should survive a failed rebuild")
	}
}

func TestIndexUseCase_BuildEmptyCorpus(t *testing.T) {
	uc := NewIndexUseCase(&stubEmbedder{def: []float32{1}}, zerolog.Nop())

	if err := uc.Build(context.Background(), &entities.Corpus{}); err == nil {
		t.Error("Build should reject an empty corpus")
	}
	if err := uc.Build(context.Background(), nil); err == nil {
		t.Error("Build should reject a nil corpus")
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		a, b []float32
		want float64
	}{
		{[]float32{1, 0}, []float32{1, 0}, 1},
		{[]float32{1, 0}, []float32{0, 1}, 0},
		{[]float32{1, 0}, []float32{-1, 0}, -1},
		{[]float32{1, 2}, []float32{1}, 0},    // length mismatch
		{[]float32{0, 0}, []float32{1, 1}, 0}, // zero magnitude
	}
	for _, tc := range cases {
		got := cosineSimilarity(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("cosineSimilarity(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
