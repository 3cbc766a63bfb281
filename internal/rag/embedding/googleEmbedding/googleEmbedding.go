package googleEmbedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/metrics"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"google.golang.org/genai"
)

const retryDelay = 5 * time.Second

type client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

// GetGoogleEmbeddingClient returns nil when no client can be built so the caller falls back to tf-idf.
func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string, httpClient *http.Client) embedding.Encoder {
	logger := logger_i.NewLogger("google_embedding").With("model", modelName)
	if apikey == "" {
		logger.Warn("No Gemini API key configured")
		return nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apikey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		logger.Error("Error creating Google Embedding client", "error", err)
		return nil
	}
	logger.Info("Google Embedding client created")
	return &client{genAi: c, model: modelName, logger: logger}
}

func (c *client) Model() string {
	return c.model
}

// Encode retries once after a pause when the API reports a rate limit.
func (c *client) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	log := c.logger.WithContext(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("encode", time.Since(start)) }()

	res, err := c.doCall(ctx, getContent(texts))
	if err != nil && doRetry(err, log) {
		log.Debug("Retrying in 5 seconds")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
		res, err = c.doCall(ctx, getContent(texts))
	}
	if err != nil {
		log.Error("Error getting Embeddings from Google", "error", err)
		return nil, err
	}
	if res == nil || len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("google embedding returned an unexpected result for %d texts", len(texts))
	}

	embeddingResults := make([][]float32, 0, len(res.Embeddings))
	for _, r := range res.Embeddings {
		embeddingResults = append(embeddingResults, r.Values)
	}
	return embeddingResults, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"})
}
