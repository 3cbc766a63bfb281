package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/LegalDocAPI/internal/adapter"
	"github.com/akolanti/LegalDocAPI/internal/api"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logger_i.NewLogger("RequestHandler").Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.ToErrorResponse(id, error, httpCode))
}

func writeSoftError(w http.ResponseWriter, message string) {
	writeJsonResponse(w, http.StatusOK, adapter.ToSoftError(message))
}

func validateContext(ctx context.Context, log *logger_i.Logger) bool {
	if err := ctx.Err(); err != nil {
		log.Warn("context error", "error", err)
		return false
	}
	return true
}

// decodeBody reads a JSON body into dst. Unknown fields are ignored.
func decodeBody(r *http.Request, dst any, log *logger_i.Logger) bool {
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error("Couldn't close the request body", "error", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Warn("Bad request body", "error", err)
		return false
	}
	return true
}

// writeServiceError maps service errors onto the response. Missing documents and indexes are
// reported in-band with a 200, notFound names the message the route uses for a missing document.
func writeServiceError(w http.ResponseWriter, err error, docId string, notFound string, log *logger_i.Logger) {
	switch {
	case errors.Is(err, documentModel.ErrDocumentNotFound):
		writeSoftError(w, notFound)
	case errors.Is(err, documentModel.ErrNotIndexed):
		writeSoftError(w, api.SoftNotIndexed)
	case errors.Is(err, documentModel.ErrNoSentences):
		writeSoftError(w, api.SoftNoSentences)
	case errors.Is(err, documentModel.ErrGeneratorUnavailable):
		log.Error("no generator configured", "doc_id", docId)
		WriteErrorResponse(w, http.StatusServiceUnavailable, docId, "Model unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		log.Error("model call timed out", "doc_id", docId, "error", err)
		WriteErrorResponse(w, http.StatusGatewayTimeout, docId, "Model timed out")
	default:
		log.Error("request failed", "doc_id", docId, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, docId, "Internal Server Error")
	}
}
