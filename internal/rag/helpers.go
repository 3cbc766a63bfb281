package rag

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/metrics"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding"
	"github.com/akolanti/LegalDocAPI/internal/rag/vectorDB"
)

type SummaryResult struct {
	DocId     string
	Mode      documentModel.SummaryMode
	Paragraph string
	Sentences []string
	// IsList reports whether Sentences or Paragraph is the summary
	IsList bool
}

type IndexResult struct {
	DocId     string
	Sentences int
	Retriever documentModel.RetrieverKind
	Note      string
}

type AnswerResult struct {
	Answer    string
	Citations []documentModel.Hit
	Cached    bool
}

type SearchResult struct {
	DocId     string
	Retriever documentModel.RetrieverKind
	Hits      []documentModel.Hit
}

func (s *service) buildDenseIndex(ctx context.Context, doc documentModel.Document, builtAt time.Time) (documentModel.SentenceIndex, error) {
	if s.encoder == nil {
		return nil, documentModel.ErrEncoderUnavailable
	}
	encodeCtx, cancel := s.modelContext(ctx)
	defer cancel()

	vectors, err := embedding.EncodeBatched(encodeCtx, s.encoder, doc.Sentences, config.EmbeddingBatchSize)
	if err != nil {
		return nil, fmt.Errorf("encode sentences: %w", err)
	}
	for _, v := range vectors {
		embedding.Normalize(v)
	}

	if s.denseStore != nil {
		err = s.denseStore.ReplaceDocument(ctx, doc.Id, doc.Sentences, vectors)
		if err == nil {
			return vectorDB.NewStoredDenseIndex(s.encoder, s.denseStore, doc.Id, len(doc.Sentences), builtAt), nil
		}
		s.logger.WithContext(ctx).Warn("vector store unavailable, keeping vectors in memory", "error", err, "doc_id", doc.Id)
	}
	return vectorDB.NewDenseIndex(s.encoder, doc.Sentences, vectors, builtAt)
}

func (s *service) retrieve(ctx context.Context, doc documentModel.Document, question string, k int) ([]documentModel.Hit, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieve_"+string(doc.Index.Method()), time.Since(start)) }()

	retrieveCtx, cancel := s.modelContext(ctx)
	defer cancel()
	return doc.Index.TopK(retrieveCtx, question, k)
}

func (s *service) modelContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.modelTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.modelTimeout)
}

func (s *service) lookupAnswer(ctx context.Context, key string) (documentModel.CachedAnswer, bool) {
	if s.answerCache == nil {
		return documentModel.CachedAnswer{}, false
	}
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	cached, hit := s.answerCache.GetAnswer(ctx, key)
	metrics.CountCacheLookup(hit)
	return cached, hit
}

// cacheAnswer and recordExchange only log failures. The caller already has its answer.
func (s *service) cacheAnswer(ctx context.Context, key string, result AnswerResult) {
	if s.answerCache == nil {
		return
	}
	err := s.answerCache.SaveAnswer(ctx, key, documentModel.CachedAnswer{Answer: result.Answer, Citations: result.Citations})
	if err != nil {
		s.logger.WithContext(ctx).Warn("could not cache answer", "error", err)
	}
}

func (s *service) recordExchange(ctx context.Context, docId string, question string, answer string) {
	if s.history == nil {
		return
	}
	err := s.history.Append(ctx, docId, documentModel.Exchange{Question: question, Answer: answer, AskedAt: s.now()})
	if err != nil {
		s.logger.WithContext(ctx).Warn("could not save exchange", "error", err, "doc_id", docId)
	}
}

// answerCacheKey changes whenever the document is re-indexed, so stale answers are never served.
func answerCacheKey(doc documentModel.Document, question string, k int) string {
	sum := sha256.Sum256([]byte(question))
	return fmt.Sprintf("%s:%d:%s:%d:%x", doc.Id, doc.Index.BuiltAt().UnixNano(), doc.Index.Method(), k, sum[:16])
}

func formatCitations(hits []documentModel.Hit) []documentModel.Hit {
	out := make([]documentModel.Hit, len(hits))
	for i, h := range hits {
		out[i] = documentModel.Hit{
			Index: h.Index,
			Text:  truncateRunes(h.Text, config.CitationTextLimit),
			Score: roundTo(h.Score, config.CitationScoreDecimal),
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
