package llm

import (
	"context"
	"time"
)

// GenerateOptions carries decoding parameters for sequence-to-sequence models. Zero values are
// left to the backend default. Backends drop what their API cannot express.
type GenerateOptions struct {
	MaxNewTokens      int
	MinNewTokens      int
	MaxLength         int
	NumBeams          int
	NoRepeatNgramSize int
	LengthPenalty     float64
	RepetitionPenalty float64
	EarlyStopping     bool
	DoSample          bool

	// MaxInputTokens truncates the encoder input on the model server.
	MaxInputTokens int
	// GlobalAttentionIndices marks tokens that attend globally. LED needs at least position 0.
	GlobalAttentionIndices []int
}

type Provider interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	Model() string
}

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout bounds every Generate call of p. A non-positive timeout returns p unchanged.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if p == nil || timeout <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: timeout}
}

func (t *timeoutProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(callCtx, prompt, opts)
}

func (t *timeoutProvider) Model() string {
	return t.inner.Model()
}
