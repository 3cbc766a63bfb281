package vectorDB

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding"
)

// keywordEncoder maps text onto three axes so similarities are predictable.
type keywordEncoder struct {
	err error
}

func (k keywordEncoder) Model() string { return "keyword" }

func (k keywordEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if k.err != nil {
		return nil, k.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		t = strings.ToLower(t)
		v := []float32{0.01, 0.01, 0.01}
		if strings.Contains(t, "rent") {
			v[0] = 1
		}
		if strings.Contains(t, "notice") {
			v[1] = 1
		}
		if strings.Contains(t, "court") {
			v[2] = 1
		}
		out[i] = v
	}
	return out, nil
}

type mockStore struct {
	SearchFunc func(ctx context.Context, docId string, vector []float32, k int) ([]documentModel.Hit, error)
}

func (m *mockStore) ReplaceDocument(ctx context.Context, docId string, sentences []string, vectors [][]float32) error {
	return nil
}

func (m *mockStore) Search(ctx context.Context, docId string, vector []float32, k int) ([]documentModel.Hit, error) {
	return m.SearchFunc(ctx, docId, vector, k)
}

var sentences = []string{
	"Rent is due on the first day.",
	"Either party may give notice.",
	"The court held the clause void.",
}

func TestDenseIndex_TopK(t *testing.T) {
	enc := keywordEncoder{}
	vectors, _ := enc.Encode(context.Background(), sentences)
	for _, v := range vectors {
		embedding.Normalize(v)
	}
	idx, err := NewDenseIndex(enc, sentences, vectors, time.Now())
	if err != nil {
		t.Fatalf("NewDenseIndex failed: %v", err)
	}
	if idx.Method() != documentModel.RetrieverDense || idx.Size() != 3 {
		t.Errorf("unexpected metadata %s %d", idx.Method(), idx.Size())
	}

	hits, err := idx.TopK(context.Background(), "what did the court decide", 2)
	if err != nil {
		t.Fatalf("TopK failed: %v", err)
	}
	if len(hits) != 2 || hits[0].Index != 2 {
		t.Fatalf("expected the court sentence first, got %+v", hits)
	}
	if hits[0].Score < hits[1].Score {
		t.Error("hits must be ordered by descending score")
	}
}

func TestDenseIndex_KeepsVectorsAsGiven(t *testing.T) {
	vectors := [][]float32{{3, 4}}
	if _, err := NewDenseIndex(keywordEncoder{}, []string{"a"}, vectors, time.Now()); err != nil {
		t.Fatalf("NewDenseIndex failed: %v", err)
	}
	if vectors[0][0] != 3 || vectors[0][1] != 4 {
		t.Errorf("vectors were rewritten: %v", vectors[0])
	}
}

func TestDenseIndex_KBounds(t *testing.T) {
	enc := keywordEncoder{}
	vectors, _ := enc.Encode(context.Background(), sentences)
	idx, _ := NewDenseIndex(enc, sentences, vectors, time.Now())

	tests := []struct {
		k    int
		want int
	}{
		{0, 3},
		{-1, 3},
		{1, 1},
		{50, 3},
	}
	for _, tt := range tests {
		hits, err := idx.TopK(context.Background(), "rent", tt.k)
		if err != nil {
			t.Fatalf("TopK(%d) failed: %v", tt.k, err)
		}
		if len(hits) != tt.want {
			t.Errorf("TopK(%d) returned %d hits, want %d", tt.k, len(hits), tt.want)
		}
	}
}

func TestDenseIndex_EncoderError(t *testing.T) {
	idx, _ := NewDenseIndex(keywordEncoder{err: errors.New("offline")}, []string{"a"}, [][]float32{{1}}, time.Now())
	if _, err := idx.TopK(context.Background(), "q", 1); err == nil {
		t.Error("expected the encoder error to propagate")
	}
}

func TestDenseIndex_Mismatch(t *testing.T) {
	if _, err := NewDenseIndex(keywordEncoder{}, []string{"a", "b"}, [][]float32{{1}}, time.Now()); err == nil {
		t.Error("expected a mismatch error")
	}
}

func TestSparseIndex_TopK(t *testing.T) {
	idx, err := NewSparseIndex(sentences, time.Now())
	if err != nil {
		t.Fatalf("NewSparseIndex failed: %v", err)
	}
	if idx.Method() != documentModel.RetrieverSparse {
		t.Errorf("method got %s", idx.Method())
	}

	hits, err := idx.TopK(context.Background(), "When is rent due?", 1)
	if err != nil {
		t.Fatalf("TopK failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Index != 0 {
		t.Fatalf("expected the rent sentence, got %+v", hits)
	}
}

func TestSparseIndex_NoOverlapKeepsOrder(t *testing.T) {
	idx, _ := NewSparseIndex(sentences, time.Now())
	hits, _ := idx.TopK(context.Background(), "zebra", 3)
	for i, h := range hits {
		if h.Index != i || h.Score != 0 {
			t.Errorf("hit %d got %+v", i, h)
		}
	}
}

func TestStoredDenseIndex_DelegatesToStore(t *testing.T) {
	store := &mockStore{SearchFunc: func(ctx context.Context, docId string, vector []float32, k int) ([]documentModel.Hit, error) {
		if docId != "doc1" || k != 2 {
			t.Errorf("unexpected search args %s %d", docId, k)
		}
		return []documentModel.Hit{{Index: 1, Score: 0.2}, {Index: 0, Score: 0.8}}, nil
	}}
	idx := NewStoredDenseIndex(keywordEncoder{}, store, "doc1", 3, time.Now())

	hits, err := idx.TopK(context.Background(), "rent", 2)
	if err != nil {
		t.Fatalf("TopK failed: %v", err)
	}
	if hits[0].Index != 0 {
		t.Errorf("hits should be re-ranked by score, got %+v", hits)
	}
}
