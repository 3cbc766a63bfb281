package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Settings is everything that may differ between deployments. Defaults live in the constants above.
type Settings struct {
	ListenAddr string
	IsProd     bool

	LLMProvider  string
	LLMBaseURL   string
	LLMAPIKey    string
	SummaryModel string
	AnswerModel  string

	EncoderProvider string
	EncoderBaseURL  string
	EncoderAPIKey   string
	EncoderModel    string

	GeminiAPIKey string

	QdrantHost string
	QdrantPort int

	RedisAddr     string
	RedisPassword string

	CorsOriginPattern string
	ModelTimeout      time.Duration

	Tunables Tunables
}

// Tunables is the optional TOML file. Missing keys keep their defaults.
type Tunables struct {
	Extractive ExtractiveTunables `toml:"extractive"`
	Summary    SummaryTunables    `toml:"summary"`
	Risk       RiskTunables       `toml:"risk"`
}

type ExtractiveTunables struct {
	Keywords     []string `toml:"keywords"`
	MaxSentences int      `toml:"max_sentences"`
}

type SummaryTunables struct {
	Bullets     bool               `toml:"bullets"`
	TokenBudget int                `toml:"token_budget"`
	ChunkPass   GenerationTunables `toml:"chunk_pass"`
	FinalPass   GenerationTunables `toml:"final_pass"`
}

type GenerationTunables struct {
	MaxNewTokens      int     `toml:"max_new_tokens"`
	MinNewTokens      int     `toml:"min_new_tokens"`
	NumBeams          int     `toml:"num_beams"`
	NoRepeatNgramSize int     `toml:"no_repeat_ngram_size"`
	LengthPenalty     float64 `toml:"length_penalty"`
}

type RiskTunables struct {
	Patterns []string `toml:"patterns"`
}

func DefaultTunables() Tunables {
	return Tunables{
		Extractive: ExtractiveTunables{
			Keywords: []string{"court", "issue", "hold", "reason", "contract",
				"clause", "section", "order", "notice", "termination"},
			MaxSentences: DefaultExtractiveSentences,
		},
		Summary: SummaryTunables{
			TokenBudget: SummaryTokenBudget,
			ChunkPass: GenerationTunables{
				MaxNewTokens: 300, MinNewTokens: 80, NumBeams: 4, NoRepeatNgramSize: 3, LengthPenalty: 1.0,
			},
			FinalPass: GenerationTunables{
				MaxNewTokens: 420, MinNewTokens: 160, NumBeams: 5, NoRepeatNgramSize: 3, LengthPenalty: 1.05,
			},
		},
		Risk: RiskTunables{
			Patterns: []string{`(?i)sole discretion`, `(?i)without liability`, `(?i)indemnif`,
				`(?i)liquidated damages`, `(?i)termination for convenience`},
		},
	}
}

// Load reads .env (if present), the process environment and the tunables file at tunablesPath.
func Load(tunablesPath string) (Settings, error) {
	// a missing .env is the normal case outside development
	_ = godotenv.Load()

	s := Settings{
		ListenAddr:        getEnv("LISTEN_ADDR", ServerListenAddr),
		IsProd:            getEnvBool("IS_PROD", false),
		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", DefaultLLMProvider)),
		LLMBaseURL:        getEnv("LLM_BASE_URL", DefaultLLMBaseURL),
		LLMAPIKey:         os.Getenv("LLM_API_KEY"),
		SummaryModel:      getEnv("SUMMARY_MODEL", DefaultSummaryModel),
		AnswerModel:       getEnv("ANSWER_MODEL", DefaultAnswerModel),
		EncoderProvider:   strings.ToLower(getEnv("ENCODER_PROVIDER", DefaultEncoderProvider)),
		EncoderModel:      getEnv("ENCODER_MODEL", DefaultEncoderModel),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		QdrantHost:        os.Getenv("QDRANT_HOST"),
		QdrantPort:        getEnvInt("QDRANT_PORT", QdrantPort),
		RedisAddr:         getEnv("REDIS_ADDR", RedisAddr),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		CorsOriginPattern: getEnv("CORS_ORIGIN_PATTERN", CorsOriginPattern),
		ModelTimeout:      getEnvDuration("MODEL_TIMEOUT", ModelTimeout),
	}
	s.EncoderBaseURL = getEnv("ENCODER_BASE_URL", s.LLMBaseURL)
	s.EncoderAPIKey = getEnv("ENCODER_API_KEY", s.LLMAPIKey)

	tunables, err := LoadTunables(tunablesPath)
	if err != nil {
		return s, err
	}
	if v, ok := os.LookupEnv("SUMMARY_BULLETS"); ok {
		tunables.Summary.Bullets, _ = strconv.ParseBool(v)
	}
	s.Tunables = tunables
	return s, nil
}

// LoadTunables decodes the TOML file over the defaults. A missing file is not an error.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	if path == "" {
		return t, nil
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTunables(), nil
		}
		return DefaultTunables(), fmt.Errorf("decode tunables %s: %w", path, err)
	}
	if t.Extractive.MaxSentences <= 0 {
		t.Extractive.MaxSentences = DefaultExtractiveSentences
	}
	if t.Summary.TokenBudget <= 0 {
		t.Summary.TokenBudget = SummaryTokenBudget
	}
	return t, nil
}

func getEnv(key string, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
