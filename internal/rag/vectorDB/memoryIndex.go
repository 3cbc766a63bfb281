package vectorDB

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding/tfidf"
)

// DenseIndex holds normalised sentence embeddings in memory. Cosine similarity is the dot product.
type DenseIndex struct {
	encoder   embedding.Encoder
	sentences []string
	vectors   [][]float32
	builtAt   time.Time
}

// NewDenseIndex keeps vectors as given. Callers pass unit-length vectors.
func NewDenseIndex(encoder embedding.Encoder, sentences []string, vectors [][]float32, builtAt time.Time) (*DenseIndex, error) {
	if len(sentences) != len(vectors) {
		return nil, fmt.Errorf("mismatch: got %d sentences but %d vectors", len(sentences), len(vectors))
	}
	return &DenseIndex{encoder: encoder, sentences: sentences, vectors: vectors, builtAt: builtAt}, nil
}

func (d *DenseIndex) Method() documentModel.RetrieverKind { return documentModel.RetrieverDense }
func (d *DenseIndex) Size() int                           { return len(d.sentences) }
func (d *DenseIndex) BuiltAt() time.Time                  { return d.builtAt }

func (d *DenseIndex) TopK(ctx context.Context, question string, k int) ([]documentModel.Hit, error) {
	k = ClampK(k, len(d.sentences), config.DefaultTopK)
	if k == 0 {
		return nil, nil
	}
	q, err := encodeQuery(ctx, d.encoder, question)
	if err != nil {
		return nil, err
	}
	hits := make([]documentModel.Hit, len(d.sentences))
	for i, v := range d.vectors {
		hits[i] = documentModel.Hit{Index: i, Text: d.sentences[i], Score: embedding.Dot(q, v)}
	}
	return rankHits(hits, k), nil
}

// StoredDenseIndex delegates the similarity search to a DenseStore.
type StoredDenseIndex struct {
	encoder embedding.Encoder
	store   DenseStore
	docId   string
	size    int
	builtAt time.Time
}

func NewStoredDenseIndex(encoder embedding.Encoder, store DenseStore, docId string, size int, builtAt time.Time) *StoredDenseIndex {
	return &StoredDenseIndex{encoder: encoder, store: store, docId: docId, size: size, builtAt: builtAt}
}

func (s *StoredDenseIndex) Method() documentModel.RetrieverKind { return documentModel.RetrieverDense }
func (s *StoredDenseIndex) Size() int                           { return s.size }
func (s *StoredDenseIndex) BuiltAt() time.Time                  { return s.builtAt }

func (s *StoredDenseIndex) TopK(ctx context.Context, question string, k int) ([]documentModel.Hit, error) {
	k = ClampK(k, s.size, config.DefaultTopK)
	if k == 0 {
		return nil, nil
	}
	q, err := encodeQuery(ctx, s.encoder, question)
	if err != nil {
		return nil, err
	}
	hits, err := s.store.Search(ctx, s.docId, q, k)
	if err != nil {
		return nil, err
	}
	return rankHits(hits, k), nil
}

// SparseIndex is the tf-idf fallback used when no dense encoder is reachable.
type SparseIndex struct {
	vectorizer *tfidf.Vectorizer
	sentences  []string
	rows       []tfidf.Vector
	builtAt    time.Time
}

func NewSparseIndex(sentences []string, builtAt time.Time) (*SparseIndex, error) {
	vectorizer := tfidf.NewVectorizer(config.TfidfMinNgram, config.TfidfMaxNgram)
	rows, err := vectorizer.FitTransform(sentences)
	if err != nil {
		return nil, err
	}
	return &SparseIndex{vectorizer: vectorizer, sentences: sentences, rows: rows, builtAt: builtAt}, nil
}

func (s *SparseIndex) Method() documentModel.RetrieverKind { return documentModel.RetrieverSparse }
func (s *SparseIndex) Size() int                           { return len(s.sentences) }
func (s *SparseIndex) BuiltAt() time.Time                  { return s.builtAt }

func (s *SparseIndex) TopK(ctx context.Context, question string, k int) ([]documentModel.Hit, error) {
	k = ClampK(k, len(s.sentences), config.DefaultTopK)
	if k == 0 {
		return nil, nil
	}
	q := s.vectorizer.Transform(question)
	hits := make([]documentModel.Hit, len(s.rows))
	for i, row := range s.rows {
		hits[i] = documentModel.Hit{Index: i, Text: s.sentences[i], Score: q.Dot(row)}
	}
	return rankHits(hits, k), nil
}

func encodeQuery(ctx context.Context, encoder embedding.Encoder, question string) ([]float32, error) {
	vectors, err := encoder.Encode(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("encode question: %w", err)
	}
	if len(vectors) != 1 {
		return nil, errors.New("encoder returned no vector for the question")
	}
	return embedding.Normalize(vectors[0]), nil
}
