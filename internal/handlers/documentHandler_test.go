package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/LegalDocAPI/internal/api"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/rag"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	OnUpload    func(filename string, data []byte) (documentModel.Document, error)
	OnSummarize func(docId string, mode documentModel.SummaryMode) (rag.SummaryResult, error)
	OnIndex     func(docId string) (rag.IndexResult, error)
	OnAsk       func(docId, question string, k int) (rag.AnswerResult, error)
	OnSearch    func(docId, query string, k int) (rag.SearchResult, error)
	OnRisk      func(docId string, threshold float64) ([]documentModel.RiskClause, error)
	OnGet       func(docId string) (documentModel.Document, error)
	OnHistory   func(docId string) ([]documentModel.Exchange, error)
	Docs        []documentModel.Document
}

func (m *mockService) Upload(_ context.Context, filename string, data []byte) (documentModel.Document, error) {
	return m.OnUpload(filename, data)
}

func (m *mockService) Summarize(_ context.Context, docId string, mode documentModel.SummaryMode) (rag.SummaryResult, error) {
	return m.OnSummarize(docId, mode)
}

func (m *mockService) Index(_ context.Context, docId string) (rag.IndexResult, error) {
	return m.OnIndex(docId)
}

func (m *mockService) Ask(_ context.Context, docId string, question string, k int) (rag.AnswerResult, error) {
	return m.OnAsk(docId, question, k)
}

func (m *mockService) Search(_ context.Context, docId string, query string, k int) (rag.SearchResult, error) {
	return m.OnSearch(docId, query, k)
}

func (m *mockService) Risk(_ context.Context, docId string, threshold float64) ([]documentModel.RiskClause, error) {
	return m.OnRisk(docId, threshold)
}

func (m *mockService) GetDocument(_ context.Context, docId string) (documentModel.Document, error) {
	return m.OnGet(docId)
}

func (m *mockService) ListDocuments(_ context.Context) []documentModel.Document {
	return m.Docs
}

func (m *mockService) History(_ context.Context, docId string) ([]documentModel.Exchange, error) {
	return m.OnHistory(docId)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestUpload(t *testing.T) {
	var gotName string
	h := NewDocumentHandler(&mockService{
		OnUpload: func(filename string, data []byte) (documentModel.Document, error) {
			gotName = filename
			return documentModel.Document{Id: "abcd1234", Title: filename, Text: string(data)}, nil
		},
	})

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "lease.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("The tenant shall pay rent."))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "abcd1234", out["doc_id"])
	assert.Equal(t, "lease.txt", out["title"])
	assert.EqualValues(t, 26, out["chars"])
	assert.Equal(t, "lease.txt", gotName)
}

func TestUpload_MissingFile(t *testing.T) {
	h := NewDocumentHandler(&mockService{})

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "nothing"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummarize_DefaultsToAbstractive(t *testing.T) {
	var gotMode documentModel.SummaryMode
	h := NewDocumentHandler(&mockService{
		OnSummarize: func(docId string, mode documentModel.SummaryMode) (rag.SummaryResult, error) {
			gotMode = mode
			return rag.SummaryResult{DocId: docId, Paragraph: "A lease."}, nil
		},
	})

	rec := postJSON(t, h.Summarize, `{"doc_id":"abcd1234"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, documentModel.SummaryAbstractive, gotMode)
	assert.Equal(t, "A lease.", decode(t, rec)["summary"])
}

func TestSummarize_ExtractiveList(t *testing.T) {
	h := NewDocumentHandler(&mockService{
		OnSummarize: func(docId string, mode documentModel.SummaryMode) (rag.SummaryResult, error) {
			return rag.SummaryResult{DocId: docId, Sentences: []string{"One.", "Two."}, IsList: true}, nil
		},
	})

	rec := postJSON(t, h.Summarize, `{"doc_id":"abcd1234","mode":"Extractive"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"One.", "Two."}, decode(t, rec)["summary"])
}

func TestSoftErrors(t *testing.T) {
	notFound := func(string) error { return documentModel.ErrDocumentNotFound }
	svc := &mockService{
		OnSummarize: func(id string, _ documentModel.SummaryMode) (rag.SummaryResult, error) {
			return rag.SummaryResult{}, notFound(id)
		},
		OnIndex: func(id string) (rag.IndexResult, error) { return rag.IndexResult{}, notFound(id) },
		OnAsk: func(string, string, int) (rag.AnswerResult, error) {
			return rag.AnswerResult{}, documentModel.ErrNotIndexed
		},
		OnRisk: func(id string, _ float64) ([]documentModel.RiskClause, error) { return nil, notFound(id) },
	}
	h := NewDocumentHandler(svc)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		body    string
		want    string
	}{
		{"summarize", h.Summarize, `{"doc_id":"missing"}`, api.SoftDocumentNotFound},
		{"index", h.Index, `{"doc_id":"missing"}`, api.SoftDocNotFound},
		{"ask", h.Ask, `{"doc_id":"abcd1234","question":"Who pays?"}`, api.SoftNotIndexed},
		{"risk", h.Risk, `{"doc_id":"missing","threshold":0.5}`, api.SoftDocumentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, tt.handler, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["error"])
		})
	}
}

func TestIndex_NoSentences(t *testing.T) {
	h := NewDocumentHandler(&mockService{
		OnIndex: func(string) (rag.IndexResult, error) { return rag.IndexResult{}, documentModel.ErrNoSentences },
	})

	rec := postJSON(t, h.Index, `{"doc_id":"abcd1234"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, api.SoftNoSentences, decode(t, rec)["error"])
}

func TestAsk(t *testing.T) {
	var gotK int
	h := NewDocumentHandler(&mockService{
		OnAsk: func(docId, question string, k int) (rag.AnswerResult, error) {
			gotK = k
			return rag.AnswerResult{
				Answer:    "1,200 dollars",
				Citations: []documentModel.Hit{{Index: 2, Text: "Rent is 1,200 dollars.", Score: 0.812}},
			}, nil
		},
	})

	rec := postJSON(t, h.Ask, `{"doc_id":"abcd1234","question":"How much is rent?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotK)
	out := decode(t, rec)
	assert.Equal(t, "1,200 dollars", out["answer"])
	citations := out["citations"].([]any)
	require.Len(t, citations, 1)
	assert.EqualValues(t, 2, citations[0].(map[string]any)["i"])
	_, hasCached := out["cached"]
	assert.False(t, hasCached)
}

func TestAsk_BadRequests(t *testing.T) {
	h := NewDocumentHandler(&mockService{})

	for _, body := range []string{`{"doc_id":"abcd1234"}`, `{"question":"Who?"}`, `not json`} {
		rec := postJSON(t, h.Ask, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestAsk_HardErrors(t *testing.T) {
	tests := []struct {
		err      error
		code     int
		canRetry bool
	}{
		{documentModel.ErrGeneratorUnavailable, http.StatusServiceUnavailable, true},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, true},
		{errors.New("boom"), http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		h := NewDocumentHandler(&mockService{
			OnAsk: func(string, string, int) (rag.AnswerResult, error) { return rag.AnswerResult{}, tt.err },
		})
		rec := postJSON(t, h.Ask, `{"doc_id":"abcd1234","question":"Who?"}`)

		require.Equal(t, tt.code, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "abcd1234", resp.Id)
		assert.Equal(t, tt.code, resp.Error.Code)
		assert.Equal(t, tt.canRetry, resp.Error.Retry)
	}
}

func TestRisk_RejectsThresholdOutOfRange(t *testing.T) {
	h := NewDocumentHandler(&mockService{})

	rec := postJSON(t, h.Risk, `{"doc_id":"abcd1234","threshold":1.5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentRoutes(t *testing.T) {
	svc := &mockService{
		Docs: []documentModel.Document{{Id: "abcd1234", Title: "lease.txt", Sentences: []string{"One."}}},
		OnGet: func(docId string) (documentModel.Document, error) {
			if docId != "abcd1234" {
				return documentModel.Document{}, documentModel.ErrDocumentNotFound
			}
			return documentModel.Document{Id: docId, Title: "lease.txt"}, nil
		},
		OnHistory: func(docId string) ([]documentModel.Exchange, error) {
			return []documentModel.Exchange{{Question: "Who?", Answer: "The tenant."}}, nil
		},
	}
	h := NewDocumentHandler(svc)
	r := chi.NewRouter()
	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/{id}", h.GetDocument)
	r.Get("/documents/{id}/history", h.GetHistory)
	r.Get("/health", h.Health)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/documents")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["documents"], 1)

	rec = get("/documents/abcd1234")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lease.txt", decode(t, rec)["title"])

	assert.Equal(t, http.StatusNotFound, get("/documents/nope").Code)

	rec = get("/documents/abcd1234/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["exchanges"], 1)

	rec = get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
