package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/rag/ingest"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

// Abstractive runs the two-stage long-document summary: every token-budget chunk is summarised
// on its own, then the stitched chunk summaries are compressed once more.
type Abstractive struct {
	provider llm.Provider
	tunables config.SummaryTunables
	logger   *logger_i.Logger
}

func NewAbstractive(provider llm.Provider, tunables config.SummaryTunables) *Abstractive {
	if tunables.TokenBudget <= 0 {
		tunables.TokenBudget = config.SummaryTokenBudget
	}
	return &Abstractive{
		provider: provider,
		tunables: tunables,
		logger:   logger_i.NewLogger("summarizer"),
	}
}

// Summarize returns one paragraph. Empty text yields "" without calling the model.
func (a *Abstractive) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	log := a.logger.WithContext(ctx)
	chunks := ingest.ChunkByTokens(text, a.tunables.TokenBudget)
	log.Info("summarizing", "chunks", len(chunks), "model", a.provider.Model())

	firstPass := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.SummaryParallelism)
	for i, chunk := range chunks {
		g.Go(func() error {
			out, err := a.provider.Generate(gctx, chunk, generateOptions(a.tunables.ChunkPass))
			if err != nil {
				return fmt.Errorf("summarize chunk %d: %w", i, err)
			}
			firstPass[i] = strings.TrimSpace(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("chunk summary failed", "error", err)
		return "", err
	}

	stitched := strings.Join(firstPass, " ")
	final, err := a.provider.Generate(ctx, stitched, generateOptions(a.tunables.FinalPass))
	if err != nil {
		log.Error("final summary failed", "error", err)
		return "", fmt.Errorf("summarize stitched text: %w", err)
	}
	return strings.TrimSpace(final), nil
}

// SummarizeBullets re-splits the final summary into at most six bullets of more than 15 characters.
// Length is counted in runes.
func (a *Abstractive) SummarizeBullets(ctx context.Context, text string) ([]string, error) {
	final, err := a.Summarize(ctx, text)
	if err != nil {
		return nil, err
	}
	return Bullets(final), nil
}

func Bullets(summary string) []string {
	bullets := []string{}
	for _, s := range ingest.SplitSentences(summary) {
		if utf8.RuneCountInString(s) <= config.SummaryBulletMinLength {
			continue
		}
		bullets = append(bullets, s)
		if len(bullets) == config.SummaryBulletLimit {
			break
		}
	}
	return bullets
}

func generateOptions(t config.GenerationTunables) llm.GenerateOptions {
	return llm.GenerateOptions{
		MaxNewTokens:           t.MaxNewTokens,
		MinNewTokens:           t.MinNewTokens,
		NumBeams:               t.NumBeams,
		NoRepeatNgramSize:      t.NoRepeatNgramSize,
		LengthPenalty:          t.LengthPenalty,
		EarlyStopping:          true,
		MaxInputTokens:         config.SummaryInputTokenLimit,
		GlobalAttentionIndices: []int{0},
	}
}
