package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/data/store"
	"github.com/akolanti/LegalDocAPI/internal/handlers"
	"github.com/akolanti/LegalDocAPI/internal/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := rag.NewService(rag.Dependencies{
		Store:    store.InitInMemoryDocumentStore(),
		Tunables: config.DefaultTunables(),
	})
	require.NoError(t, err)
	return NewRouter(config.CorsOriginPattern, Routes{Documents: handlers.NewDocumentHandler(svc)})
}

func TestNewRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(config.TRACE_ID_HEADER))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/index", bytes.NewBufferString(`{"doc_id":"missing"}`))
	req.RemoteAddr = "192.0.2.10:1234"
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var soft map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &soft))
	assert.Equal(t, "doc not found", soft["error"])

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ask", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewRouter_MountsMCPOnlyWhenGiven(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
