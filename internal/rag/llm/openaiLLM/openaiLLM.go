package openaiLLM

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/metrics"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// local model servers accept any bearer token
const placeholderKey = "EMPTY"

type llmClient struct {
	client    openai.Client
	modelName string
	logger    *logger_i.Logger
}

// NewClient talks to any OpenAI compatible chat completions server. Decoding parameters the
// OpenAI schema lacks (beams, global attention, ...) are sent as extra body fields.
func NewClient(baseURL string, apiKey string, modelName string, httpClient *http.Client) llm.Provider {
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
	logger := logger_i.NewLogger("llm_openai").With("model", modelName)
	logger.Info("OpenAI compatible client created", "baseURL", baseURL)
	return &llmClient{
		client:    openai.NewClient(opts...),
		modelName: modelName,
		logger:    logger,
	}
}

func (c *llmClient) Model() string {
	return c.modelName
}

func (c *llmClient) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	log := c.logger.WithContext(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generate", time.Since(start)) }()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	switch {
	case opts.MaxNewTokens > 0:
		params.MaxTokens = openai.Int(int64(opts.MaxNewTokens))
	case opts.MaxLength > 0:
		params.MaxTokens = openai.Int(int64(opts.MaxLength))
	}
	if !opts.DoSample {
		params.Temperature = openai.Float(0)
	}

	log.Debug("generating", "prompt_chars", len(prompt), "beams", opts.NumBeams)
	resp, err := c.client.Chat.Completions.New(ctx, params, extraFields(opts)...)
	if err != nil {
		log.Error("generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func extraFields(opts llm.GenerateOptions) []option.RequestOption {
	var extra []option.RequestOption
	set := func(key string, value any) {
		extra = append(extra, option.WithJSONSet(key, value))
	}
	if opts.MinNewTokens > 0 {
		set("min_tokens", opts.MinNewTokens)
	}
	if opts.NumBeams > 1 {
		set("num_beams", opts.NumBeams)
		set("early_stopping", opts.EarlyStopping)
	}
	if opts.NoRepeatNgramSize > 0 {
		set("no_repeat_ngram_size", opts.NoRepeatNgramSize)
	}
	if opts.LengthPenalty > 0 {
		set("length_penalty", opts.LengthPenalty)
	}
	if opts.RepetitionPenalty > 0 {
		set("repetition_penalty", opts.RepetitionPenalty)
	}
	if opts.MaxInputTokens > 0 {
		set("truncate_prompt_tokens", opts.MaxInputTokens)
	}
	if len(opts.GlobalAttentionIndices) > 0 {
		set("global_attention_indices", opts.GlobalAttentionIndices)
	}
	return extra
}
