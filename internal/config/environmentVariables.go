package config

import (
	"log/slog"
	"time"
)

type contextKey string

const (
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY     contextKey = "traceId"
	TRACE_ID_HEADER             = "X-Trace-Id"
	RATE_LIMIT_PER_SECOND       = 5
	BURST_RATE_LIMIT_PER_SECOND = 10
	RATE_LIMITER_IDLE_TTL       = 10 * time.Minute

	//serverTimeouts
	//write timeout is generous because summarization blocks the request
	ReadTimeout            = 15 * time.Second
	WriteTimeout           = 5 * time.Minute
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//upload
	MaxUploadSize        = 32 << 20 //32mb
	UploadChunkWords     = 250
	DefaultChunkWords    = 400
	DocIdLength          = 8
	PdfPageExtractTimout = 10 * time.Second

	//frontend dev server
	CorsOriginPattern = `^http://(localhost|127\.0\.0\.1):5173$`

	//retrieval
	DefaultTopK          = 5
	CitationTextLimit    = 300
	CitationScoreDecimal = 3
	TfidfMinNgram        = 1
	TfidfMaxNgram        = 2

	//summaries
	DefaultExtractiveSentences = 5
	SummaryTokenBudget         = 3500
	SummaryInputTokenLimit     = 4096
	SummaryBulletMinLength     = 15
	SummaryBulletLimit         = 6
	SummaryParallelism         = 2

	//answers
	AnswerMaxLength = 256
	AnswerPrompt    = "Context: %s\n\nQuestion: %s\nAnswer:"

	//llm
	DefaultLLMProvider  = "openai"
	DefaultLLMBaseURL   = "http://127.0.0.1:8080/v1"
	DefaultSummaryModel = "allenai/led-base-16384"
	DefaultAnswerModel  = "google/flan-t5-base"
	GeminiModelName     = "gemini-2.5-flash-lite-preview-09-2025"
	ModelTimeout        = 120 * time.Second

	//embeddings
	DefaultEncoderProvider = "openai"
	DefaultEncoderModel    = "sentence-transformers/all-MiniLM-L6-v2"
	GoogleEmbeddingModel   = "gemini-embedding-001"
	EmbeddingBatchSize     = 64

	//http pooling for model servers
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//vectorDB
	QdrantPort          = 6334
	QdrantUseTLS        = false
	QdrantPoolSize      = 1
	QdrantCollection    = "legal-sentences"
	QdrantUpsertBatch   = 256
	QdrantDocIdField    = "doc_id"
	QdrantSentenceField = "sentence_index"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisHistoryStore   = 1
	RedisAnswerCache    = 2
	HistoryLimit        = 5
	HistoryKeyPrefix    = "history:"
	AnswerKeyPrefix     = "answer:"
	RedisAnswerCacheTTL = 1 * time.Hour
	RedisPingTimeout    = 3 * time.Second

	DefaultConfigFile = "legal.toml"
)
