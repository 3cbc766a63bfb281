package openaiEmbedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/metrics"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const placeholderKey = "EMPTY"

type client struct {
	api       openai.Client
	modelName string
	logger    *logger_i.Logger
}

// NewEncoder calls the /embeddings route of an OpenAI compatible server, such as one hosting a
// sentence-transformers model.
func NewEncoder(baseURL string, apiKey string, modelName string, httpClient *http.Client) embedding.Encoder {
	if apiKey == "" {
		apiKey = placeholderKey
	}
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	logger := logger_i.NewLogger("openai_embedding").With("model", modelName)
	logger.Info("OpenAI compatible embedding client created", "baseURL", baseURL)
	return &client{
		api:       openai.NewClient(opts...),
		modelName: modelName,
		logger:    logger,
	}
}

func (c *client) Model() string {
	return c.modelName
}

func (c *client) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	log := c.logger.WithContext(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("encode", time.Since(start)) }()

	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:          openai.EmbeddingModel(c.modelName),
		Input:          openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		log.Error("embedding request failed", "error", err, "texts", len(texts))
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("got %d embeddings for %d texts", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vec := make([]float32, len(d.Embedding))
		for i, x := range d.Embedding {
			vec[i] = float32(x)
		}
		out[d.Index] = vec
	}
	return out, nil
}
