package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/adapter/utils"
	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/metrics"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding"
	"github.com/akolanti/LegalDocAPI/internal/rag/ingest"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm"
	"github.com/akolanti/LegalDocAPI/internal/rag/risk"
	"github.com/akolanti/LegalDocAPI/internal/rag/summarize"
	"github.com/akolanti/LegalDocAPI/internal/rag/vectorDB"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
)

// Service is everything the transports (HTTP, MCP) may do with documents. The concrete
// service keeps its stores and model clients private so callers can be tested against mocks.
type Service interface {
	Upload(ctx context.Context, filename string, data []byte) (documentModel.Document, error)
	Summarize(ctx context.Context, docId string, mode documentModel.SummaryMode) (SummaryResult, error)
	Index(ctx context.Context, docId string) (IndexResult, error)
	Ask(ctx context.Context, docId string, question string, k int) (AnswerResult, error)
	Search(ctx context.Context, docId string, query string, k int) (SearchResult, error)
	Risk(ctx context.Context, docId string, threshold float64) ([]documentModel.RiskClause, error)
	GetDocument(ctx context.Context, docId string) (documentModel.Document, error)
	ListDocuments(ctx context.Context) []documentModel.Document
	History(ctx context.Context, docId string) ([]documentModel.Exchange, error)
}

// Dependencies wires a Service. Summarizer, Generator, Encoder and DenseStore may be nil:
// summaries and answers then fail with ErrGeneratorUnavailable, indexing falls back to tf-idf
// and dense vectors stay in memory.
type Dependencies struct {
	Store       documentModel.DocumentStore
	AnswerCache documentModel.AnswerCache
	History     documentModel.HistoryStore
	Summarizer  llm.Provider
	Generator   llm.Provider
	Encoder     embedding.Encoder
	DenseStore  vectorDB.DenseStore
	Tunables    config.Tunables
	// bounds each model call
	ModelTimeout time.Duration
	Now          func() time.Time
}

type service struct {
	store        documentModel.DocumentStore
	answerCache  documentModel.AnswerCache
	history      documentModel.HistoryStore
	abstractive  *summarize.Abstractive
	generator    llm.Provider
	encoder      embedding.Encoder
	denseStore   vectorDB.DenseStore
	riskScorer   *risk.Scorer
	tunables     config.Tunables
	modelTimeout time.Duration
	now          func() time.Time
	logger       *logger_i.Logger
}

func NewService(deps Dependencies) (Service, error) {
	if deps.Store == nil {
		return nil, errors.New("document store is required")
	}
	scorer, err := risk.NewScorer(deps.Tunables.Risk.Patterns)
	if err != nil {
		return nil, err
	}
	s := &service{
		store:        deps.Store,
		answerCache:  deps.AnswerCache,
		history:      deps.History,
		generator:    llm.WithTimeout(deps.Generator, deps.ModelTimeout),
		encoder:      deps.Encoder,
		denseStore:   deps.DenseStore,
		riskScorer:   scorer,
		tunables:     deps.Tunables,
		modelTimeout: deps.ModelTimeout,
		now:          deps.Now,
		logger:       logger_i.NewLogger("RAG Service"),
	}
	if deps.Summarizer != nil {
		s.abstractive = summarize.NewAbstractive(llm.WithTimeout(deps.Summarizer, deps.ModelTimeout), deps.Tunables.Summary)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

func (s *service) Upload(ctx context.Context, filename string, data []byte) (documentModel.Document, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_upload", time.Since(start)) }()

	doc := ingest.PrepareDocument(s.newDocId(ctx), filename, data, s.now())
	if err := s.store.Save(ctx, doc); err != nil {
		return documentModel.Document{}, err
	}
	s.logger.WithContext(ctx).Info("document uploaded", "doc_id", doc.Id, "chars", len(doc.Text),
		"sentences", len(doc.Sentences))
	return doc, nil
}

// Summarize runs the model summary only for the abstractive mode. Every other mode, including an
// empty or unknown one, returns the extractive sentences.
func (s *service) Summarize(ctx context.Context, docId string, mode documentModel.SummaryMode) (SummaryResult, error) {
	doc, found := s.store.Get(ctx, docId)
	if !found {
		return SummaryResult{}, documentModel.ErrDocumentNotFound
	}
	log := s.logger.WithContext(ctx).With("doc_id", docId)

	if mode != documentModel.SummaryAbstractive {
		metrics.CountSummary(string(documentModel.SummaryExtractive))
		return SummaryResult{
			DocId:     docId,
			Mode:      documentModel.SummaryExtractive,
			Sentences: summarize.Extractive(doc.Text, s.tunables.Extractive),
			IsList:    true,
		}, nil
	}

	if s.abstractive == nil {
		return SummaryResult{}, documentModel.ErrGeneratorUnavailable
	}
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("summarize", time.Since(start)) }()

	result := SummaryResult{DocId: docId, Mode: documentModel.SummaryAbstractive}
	if s.tunables.Summary.Bullets {
		bullets, err := s.abstractive.SummarizeBullets(ctx, doc.Text)
		if err != nil {
			log.Error("abstractive summary failed", "error", err)
			return SummaryResult{}, err
		}
		result.Sentences, result.IsList = bullets, true
	} else {
		paragraph, err := s.abstractive.Summarize(ctx, doc.Text)
		if err != nil {
			log.Error("abstractive summary failed", "error", err)
			return SummaryResult{}, err
		}
		result.Paragraph = paragraph
	}
	metrics.CountSummary(string(documentModel.SummaryAbstractive))
	log.Info("summary produced", "bullets", result.IsList)
	return result, nil
}

// Index builds a dense index when the encoder works and a tf-idf index otherwise. The reason for
// falling back is returned in the note.
func (s *service) Index(ctx context.Context, docId string) (IndexResult, error) {
	doc, found := s.store.Get(ctx, docId)
	if !found {
		return IndexResult{}, documentModel.ErrDocumentNotFound
	}
	if len(doc.Sentences) == 0 {
		return IndexResult{}, documentModel.ErrNoSentences
	}
	log := s.logger.WithContext(ctx).With("doc_id", docId)
	builtAt := s.now()

	result := IndexResult{DocId: docId, Sentences: len(doc.Sentences)}
	index, err := s.buildDenseIndex(ctx, doc, builtAt)
	if err != nil {
		log.Warn("dense index unavailable, falling back to tf-idf", "reason", err)
		result.Note = err.Error()
		index, err = vectorDB.NewSparseIndex(doc.Sentences, builtAt)
		if err != nil {
			log.Error("tf-idf index failed", "error", err)
			return IndexResult{}, fmt.Errorf("build tf-idf index: %w", err)
		}
	}

	if err := s.store.SetIndex(ctx, docId, index); err != nil {
		return IndexResult{}, err
	}
	result.Retriever = index.Method()
	metrics.CountIndexBuild(string(result.Retriever))
	log.Info("document indexed", "retriever", result.Retriever, "sentences", result.Sentences)
	return result, nil
}

func (s *service) Ask(ctx context.Context, docId string, question string, k int) (AnswerResult, error) {
	doc, err := s.indexedDocument(ctx, docId)
	if err != nil {
		return AnswerResult{}, err
	}
	if s.generator == nil {
		return AnswerResult{}, documentModel.ErrGeneratorUnavailable
	}
	if k <= 0 {
		k = config.DefaultTopK
	}
	log := s.logger.WithContext(ctx).With("doc_id", docId)

	key := answerCacheKey(doc, question, k)
	if cached, hit := s.lookupAnswer(ctx, key); hit {
		log.Debug("serving cached answer")
		s.recordExchange(ctx, doc.Id, question, cached.Answer)
		return AnswerResult{Answer: cached.Answer, Citations: cached.Citations, Cached: true}, nil
	}

	hits, err := s.retrieve(ctx, doc, question, k)
	if err != nil {
		log.Error("retrieval failed", "error", err)
		return AnswerResult{}, err
	}

	answer, err := s.generateAnswer(ctx, question, hits)
	if err != nil {
		log.Error("answer generation failed", "error", err)
		return AnswerResult{}, err
	}

	result := AnswerResult{Answer: answer, Citations: formatCitations(hits)}
	s.cacheAnswer(ctx, key, result)
	s.recordExchange(ctx, doc.Id, question, result.Answer)
	return result, nil
}

func (s *service) Search(ctx context.Context, docId string, query string, k int) (SearchResult, error) {
	doc, err := s.indexedDocument(ctx, docId)
	if err != nil {
		return SearchResult{}, err
	}
	hits, err := s.retrieve(ctx, doc, query, k)
	if err != nil {
		s.logger.WithContext(ctx).Error("retrieval failed", "error", err, "doc_id", docId)
		return SearchResult{}, err
	}
	return SearchResult{DocId: docId, Retriever: doc.Index.Method(), Hits: formatCitations(hits)}, nil
}

func (s *service) Risk(ctx context.Context, docId string, threshold float64) ([]documentModel.RiskClause, error) {
	doc, found := s.store.Get(ctx, docId)
	if !found {
		return nil, documentModel.ErrDocumentNotFound
	}
	return s.riskScorer.Rank(doc.Sentences, threshold), nil
}

func (s *service) GetDocument(ctx context.Context, docId string) (documentModel.Document, error) {
	doc, found := s.store.Get(ctx, docId)
	if !found {
		return documentModel.Document{}, documentModel.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *service) ListDocuments(ctx context.Context) []documentModel.Document {
	return s.store.List(ctx)
}

func (s *service) History(ctx context.Context, docId string) ([]documentModel.Exchange, error) {
	if _, found := s.store.Get(ctx, docId); !found {
		return nil, documentModel.ErrDocumentNotFound
	}
	if s.history == nil {
		return []documentModel.Exchange{}, nil
	}
	return s.history.Recent(ctx, docId)
}

func (s *service) newDocId(ctx context.Context) string {
	for {
		id := utils.GetNewUUID()[:config.DocIdLength]
		if _, taken := s.store.Get(ctx, id); !taken {
			return id
		}
	}
}

func (s *service) indexedDocument(ctx context.Context, docId string) (documentModel.Document, error) {
	doc, found := s.store.Get(ctx, docId)
	if !found {
		return documentModel.Document{}, documentModel.ErrDocumentNotFound
	}
	if doc.Index == nil {
		return documentModel.Document{}, documentModel.ErrNotIndexed
	}
	return doc, nil
}

func (s *service) generateAnswer(ctx context.Context, question string, hits []documentModel.Hit) (string, error) {
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	prompt := fmt.Sprintf(config.AnswerPrompt, strings.Join(texts, "\n"), question)
	answer, err := s.generator.Generate(ctx, prompt, llm.GenerateOptions{
		MaxLength: config.AnswerMaxLength,
		NumBeams:  1,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
