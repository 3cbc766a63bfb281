package gemini

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/metrics"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

// GetGeminiClient returns nil when the client cannot be created so callers can degrade.
func GetGeminiClient(ctx context.Context, apikey string, modelName string, httpClient *http.Client) llm.Provider {
	logger := logger_i.NewLogger("llm_gemini").With("model", modelName)
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
		logger.Error("Error creating Gemini client", "error", err)
		return nil
	}
	logger.Info("Gemini client created")
	return &llmClient{client: c, modelName: modelName, logger: logger}
}

func (c *llmClient) Model() string {
	return c.modelName
}

// Generate maps what Gemini supports. Beam search and global attention have no equivalent and are dropped.
func (c *llmClient) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	log := c.logger.WithContext(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generate", time.Since(start)) }()

	contentConfig := &genai.GenerateContentConfig{}
	switch {
	case opts.MaxNewTokens > 0:
		contentConfig.MaxOutputTokens = int32(opts.MaxNewTokens)
	case opts.MaxLength > 0:
		contentConfig.MaxOutputTokens = int32(opts.MaxLength)
	}
	if !opts.DoSample {
		contentConfig.Temperature = genai.Ptr[float32](0)
	}
	if opts.RepetitionPenalty > 0 {
		contentConfig.FrequencyPenalty = genai.Ptr(float32(opts.RepetitionPenalty - 1))
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), contentConfig)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	text := result.Text()
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}
