package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/LegalDocAPI/internal/adapter"
	"github.com/akolanti/LegalDocAPI/internal/adapter/utils"
	"github.com/akolanti/LegalDocAPI/internal/api"
	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/rag"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
)

type DocumentHandler struct {
	service rag.Service
	logger  *logger_i.Logger
}

func NewDocumentHandler(service rag.Service) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger_i.NewLogger("DocumentHandler"),
	}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	docs := h.service.ListDocuments(r.Context())
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok", Documents: len(docs)})
}

// Upload godoc
// @Summary      Upload a document
// @Description  Extracts, cleans and segments a PDF, HTML, DOCX/ODT/RTF or plain text file and keeps it in memory.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The document to upload"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse "Missing file or file too large"
// @Router       /upload [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())
	if !validateContext(r.Context(), log) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		log.Warn("bad upload", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	data, err := io.ReadAll(fileReader)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not read file")
		return
	}

	doc, err := h.service.Upload(r.Context(), fileMetadata.Filename, data)
	if err != nil {
		writeServiceError(w, err, "", api.SoftDocumentNotFound, log)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToUploadResponse(doc))
}

// Summarize godoc
// @Summary      Summarize a document
// @Description  "abstractive" runs the two-stage model summary and returns a paragraph (or bullets when enabled), any other mode returns the top extractive sentences.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body      api.SummarizeRequest  true  "Document and mode"
// @Success      200      {object}  api.SummarizeResponse
// @Success      200      {object}  api.SoftError  "Document not found"
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse "Model failure"
// @Router       /summarize [post]
func (h *DocumentHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())
	req := api.SummarizeRequest{Mode: string(documentModel.SummaryAbstractive)}
	if !decodeBody(r, &req, log) || req.DocId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, req.DocId, "Bad Request")
		return
	}

	mode := documentModel.SummaryMode(strings.ToLower(strings.TrimSpace(req.Mode)))
	res, err := h.service.Summarize(r.Context(), req.DocId, mode)
	if err != nil {
		writeServiceError(w, err, req.DocId, api.SoftDocumentNotFound, log)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSummarizeResponse(res))
}

// Index godoc
// @Summary      Build the retrieval index
// @Description  Encodes every sentence with the dense encoder, falling back to tf-idf when it is unavailable. Re-indexing replaces the previous index.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body      api.IndexRequest  true  "Document to index"
// @Success      200      {object}  api.IndexResponse
// @Success      200      {object}  api.SoftError  "doc not found / no sentences"
// @Failure      400      {object}  api.ErrorResponse
// @Router       /index [post]
func (h *DocumentHandler) Index(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())
	var req api.IndexRequest
	if !decodeBody(r, &req, log) || req.DocId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, req.DocId, "Bad Request")
		return
	}

	res, err := h.service.Index(r.Context(), req.DocId)
	if err != nil {
		writeServiceError(w, err, req.DocId, api.SoftDocNotFound, log)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToIndexResponse(res))
}

// Ask godoc
// @Summary      Answer a question about a document
// @Description  Retrieves the k most similar sentences and generates an answer from them.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "Document, question and k (default 5)"
// @Success      200      {object}  api.AskResponse
// @Success      200      {object}  api.SoftError  "Document not found / not indexed"
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse "Model failure"
// @Failure      503      {object}  api.ErrorResponse "No generator configured"
// @Router       /ask [post]
func (h *DocumentHandler) Ask(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())
	req := api.AskRequest{K: config.DefaultTopK}
	if !decodeBody(r, &req, log) || req.DocId == "" || strings.TrimSpace(req.Question) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, req.DocId, "Bad Request")
		return
	}

	res, err := h.service.Ask(r.Context(), req.DocId, req.Question, req.K)
	if err != nil {
		writeServiceError(w, err, req.DocId, api.SoftDocumentNotFound, log)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(res))
}

// Search godoc
// @Summary      Semantic search inside a document
// @Description  Same retrieval as /ask without generating an answer.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.SearchRequest  true  "Document, query and k (default 5)"
// @Success      200      {object}  api.SearchResponse
// @Success      200      {object}  api.SoftError  "Document not found / not indexed"
// @Failure      400      {object}  api.ErrorResponse
// @Router       /search [post]
func (h *DocumentHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())
	req := api.SearchRequest{K: config.DefaultTopK}
	if !decodeBody(r, &req, log) || req.DocId == "" || strings.TrimSpace(req.Query) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, req.DocId, "Bad Request")
		return
	}

	res, err := h.service.Search(r.Context(), req.DocId, req.Query, req.K)
	if err != nil {
		writeServiceError(w, err, req.DocId, api.SoftDocumentNotFound, log)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(res))
}

// Risk godoc
// @Summary      Flag risky clauses
// @Description  Scores every sentence for one-sided liability and termination language and returns those at or above the threshold.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body      api.RiskRequest  true  "Document and threshold in [0,1]"
// @Success      200      {object}  api.RiskResponse
// @Success      200      {object}  api.SoftError  "Document not found"
// @Failure      400      {object}  api.ErrorResponse
// @Router       /risk [post]
func (h *DocumentHandler) Risk(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())
	var req api.RiskRequest
	if !decodeBody(r, &req, log) || req.DocId == "" || req.Threshold < 0 || req.Threshold > 1 {
		WriteErrorResponse(w, http.StatusBadRequest, req.DocId, "Bad Request")
		return
	}

	clauses, err := h.service.Risk(r.Context(), req.DocId, req.Threshold)
	if err != nil {
		writeServiceError(w, err, req.DocId, api.SoftDocumentNotFound, log)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToRiskResponse(req.DocId, clauses))
}

// ListDocuments godoc
// @Summary      List uploaded documents
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentListResponse
// @Router       /documents [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(h.service.ListDocuments(r.Context())))
}

// GetDocument godoc
// @Summary      Document metadata
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentInfo
// @Failure      404  {object}  api.ErrorResponse "Document not found"
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := utils.GetChiURLParam(r, "id")
	doc, err := h.service.GetDocument(r.Context(), id)
	if errors.Is(err, documentModel.ErrDocumentNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, id, api.SoftDocumentNotFound)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentInfo(doc))
}

// GetHistory godoc
// @Summary      Recent questions about a document
// @Description  Returns the latest answered questions, newest first.
// @Tags         Questions
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.HistoryResponse
// @Failure      404  {object}  api.ErrorResponse "Document not found"
// @Router       /documents/{id}/history [get]
func (h *DocumentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())
	id := utils.GetChiURLParam(r, "id")
	exchanges, err := h.service.History(r.Context(), id)
	if errors.Is(err, documentModel.ErrDocumentNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, id, api.SoftDocumentNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err, id, api.SoftDocumentNotFound, log)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToHistoryResponse(id, exchanges))
}
