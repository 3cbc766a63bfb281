package vectorDB

import (
	"context"
	"sort"

	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
)

// DenseStore keeps sentence vectors outside the process. Vectors are expected to be L2-normalised.
type DenseStore interface {
	ReplaceDocument(ctx context.Context, docId string, sentences []string, vectors [][]float32) error
	Search(ctx context.Context, docId string, vector []float32, k int) ([]documentModel.Hit, error)
}

// ClampK bounds k to [1, size]. Non-positive k selects the default.
func ClampK(k int, size int, fallback int) int {
	if k <= 0 {
		k = fallback
	}
	return min(k, size)
}

// rankHits orders by score descending. Equal scores keep sentence order.
func rankHits(hits []documentModel.Hit, k int) []documentModel.Hit {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits
}
