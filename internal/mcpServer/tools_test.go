package mcpServer

import (
	"context"
	"testing"

	"github.com/akolanti/LegalDocAPI/internal/api"
	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/data/store"
	"github.com/akolanti/LegalDocAPI/internal/rag"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedLLM struct{ answer string }

func (f fixedLLM) Generate(context.Context, string, llm.GenerateOptions) (string, error) {
	return f.answer, nil
}

func (f fixedLLM) Model() string { return "fixed" }

const contract = "The tenant shall pay rent on the first day of each month. " +
	"The landlord may terminate the lease without liability. " +
	"Notices must be sent in writing."

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	svc, err := rag.NewService(rag.Dependencies{
		Store:      store.InitInMemoryDocumentStore(),
		History:    store.InitInMemoryHistoryStore(),
		Summarizer: fixedLLM{answer: "A residential lease."},
		Generator:  fixedLLM{answer: " the first day of each month "},
		Tunables:   config.DefaultTunables(),
	})
	require.NoError(t, err)
	doc, err := svc.Upload(context.Background(), "lease.txt", []byte(contract))
	require.NoError(t, err)
	return NewServer(svc), doc.Id
}

func TestTools_IndexThenAsk(t *testing.T) {
	s, docId := newTestServer(t)
	ctx := context.Background()

	_, _, err := s.handleAsk(ctx, nil, QuestionInput{DocId: docId, Question: "When is rent due?"})
	require.EqualError(t, err, api.SoftNotIndexed)

	_, idx, err := s.handleIndex(ctx, nil, DocumentInput{DocId: docId})
	require.NoError(t, err)
	assert.Equal(t, "tfidf", idx.Retriever)
	assert.Equal(t, 3, idx.Sentences)

	_, ans, err := s.handleAsk(ctx, nil, QuestionInput{DocId: docId, Question: "When is rent due?", K: 2})
	require.NoError(t, err)
	assert.Equal(t, "the first day of each month", ans.Answer)
	require.Len(t, ans.Citations, 2)
	assert.Equal(t, 0, ans.Citations[0].I)

	_, found, err := s.handleSearch(ctx, nil, QuestionInput{DocId: docId, Question: "notices in writing"})
	require.NoError(t, err)
	assert.Equal(t, 2, found.Hits[0].I)
}

func TestTools_Summarize(t *testing.T) {
	s, docId := newTestServer(t)

	_, out, err := s.handleSummarize(context.Background(), nil, SummarizeInput{DocId: docId})
	require.NoError(t, err)
	assert.Equal(t, "A residential lease.", out.Paragraph)

	_, out, err = s.handleSummarize(context.Background(), nil, SummarizeInput{DocId: docId, Mode: "extractive"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Sentences)
	assert.Empty(t, out.Paragraph)

	_, out, err = s.handleSummarize(context.Background(), nil, SummarizeInput{DocId: docId, Mode: "poetic"})
	require.NoError(t, err)
	assert.Len(t, out.Sentences, 3)
	assert.Empty(t, out.Paragraph)
}

func TestTools_RiskAndList(t *testing.T) {
	s, docId := newTestServer(t)
	ctx := context.Background()

	_, risks, err := s.handleRisk(ctx, nil, RiskInput{DocId: docId, Threshold: 0.1})
	require.NoError(t, err)
	require.Len(t, risks.Clauses, 1)
	assert.Equal(t, 1, risks.Clauses[0].I)

	_, _, err = s.handleRisk(ctx, nil, RiskInput{DocId: docId, Threshold: 2})
	assert.Error(t, err)

	_, list, err := s.handleList(ctx, nil, NoInput{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, docId, list.Documents[0].DocId)
	assert.False(t, list.Documents[0].Indexed)
}

func TestTools_UnknownDocument(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	// same messages as the HTTP routes: /index says "doc not found", the others "Document not found"
	_, _, err := s.handleIndex(ctx, nil, DocumentInput{DocId: "missing"})
	assert.EqualError(t, err, api.SoftDocNotFound)

	_, _, err = s.handleSummarize(ctx, nil, SummarizeInput{DocId: "missing"})
	assert.EqualError(t, err, api.SoftDocumentNotFound)

	_, _, err = s.handleRisk(ctx, nil, RiskInput{DocId: "missing"})
	assert.EqualError(t, err, api.SoftDocumentNotFound)
}

func TestHandler_IsServed(t *testing.T) {
	s, _ := newTestServer(t)
	assert.NotNil(t, s.Handler())
}
