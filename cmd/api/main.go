// @title           Legal Document API
// @version         1.0
// @description     Upload legal documents, summarize them, index their sentences and ask grounded questions.
// @termsOfService  http://swagger.io/terms/

// @contact.name    akolanti
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/customHttpClient"
	"github.com/akolanti/LegalDocAPI/internal/data/redisStore"
	"github.com/akolanti/LegalDocAPI/internal/data/store"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/handlers"
	"github.com/akolanti/LegalDocAPI/internal/mcpServer"
	"github.com/akolanti/LegalDocAPI/internal/rag"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/LegalDocAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm/gemini"
	"github.com/akolanti/LegalDocAPI/internal/rag/llm/openaiLLM"
	"github.com/akolanti/LegalDocAPI/internal/rag/vectorDB"
	"github.com/akolanti/LegalDocAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/LegalDocAPI/internal/server"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
)

func main() {
	configPath := os.Getenv("LEGAL_CONFIG")
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}
	settings, err := config.Load(configPath)
	logger_i.Init(settings.IsProd)
	var logger = logger_i.NewLogger("main")
	if err != nil {
		logger.Error("Could not load tunables", "path", configPath, "error", err)
		os.Exit(1)
	}

	listenAddr := flag.String("listen-addr", settings.ListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	httpClient := customHttpClient.NewPooledClient(settings.ModelTimeout)

	summarizer, generator := newProviders(serviceContext, settings, httpClient, logger)
	encoder := newEncoder(serviceContext, settings, httpClient, logger)

	var denseStore vectorDB.DenseStore
	var qdrantClient *qdrantDB.ClientHolder
	if settings.QdrantHost != "" {
		qdrantClient, err = qdrantDB.NewClient(serviceContext, settings.QdrantHost, settings.QdrantPort)
		if err != nil {
			logger.Warn("Qdrant is offline, dense vectors stay in memory", "error", err)
		} else {
			denseStore = qdrantClient
		}
	}

	answerCache, history := newStores(serviceContext, settings, logger)

	ragService, err := rag.NewService(rag.Dependencies{
		Store:        store.InitInMemoryDocumentStore(),
		AnswerCache:  answerCache,
		History:      history,
		Summarizer:   summarizer,
		Generator:    generator,
		Encoder:      encoder,
		DenseStore:   denseStore,
		Tunables:     settings.Tunables,
		ModelTimeout: settings.ModelTimeout,
	})
	if err != nil {
		logger.Error("Could not start the document service", "error", err)
		os.Exit(1)
	}
	logger.Debug("Available services", "Summarizer", summarizer != nil, "Generator", generator != nil,
		"Encoder", encoder != nil, "VectorDB", denseStore != nil)

	router := server.NewRouter(settings.CorsOriginPattern, server.Routes{
		Documents: handlers.NewDocumentHandler(ragService),
		MCP:       mcpServer.NewServer(ragService).Handler(),
	})

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices: func() {
			closeExternalServices()
			if qdrantClient != nil {
				qdrantClient.Close()
			}
			redisStore.CloseAll()
		},
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(*listenAddr, router)

	select {
	case <-stopExecution:
		logger.Info("Server stopped")
	case <-server.Crashed():
		os.Exit(1)
	}
}

// newProviders returns the summarization and answer models. Either may be nil when the provider
// cannot be reached, the matching endpoints then answer 503.
func newProviders(ctx context.Context, settings config.Settings, httpClient *http.Client, logger *logger_i.Logger) (llm.Provider, llm.Provider) {
	switch settings.LLMProvider {
	case "gemini":
		provider := gemini.GetGeminiClient(ctx, settings.GeminiAPIKey, config.GeminiModelName, httpClient)
		if provider == nil {
			logger.Error("Gemini is unavailable, summaries and answers are disabled")
			return nil, nil
		}
		return provider, provider
	case "openai":
		return openaiLLM.NewClient(settings.LLMBaseURL, settings.LLMAPIKey, settings.SummaryModel, httpClient),
			openaiLLM.NewClient(settings.LLMBaseURL, settings.LLMAPIKey, settings.AnswerModel, httpClient)
	default:
		logger.Warn("Unknown LLM provider, summaries and answers are disabled", "provider", settings.LLMProvider)
		return nil, nil
	}
}

// newEncoder returns nil when no dense encoder is configured. Indexing then uses tf-idf.
func newEncoder(ctx context.Context, settings config.Settings, httpClient *http.Client, logger *logger_i.Logger) embedding.Encoder {
	switch settings.EncoderProvider {
	case "gemini":
		encoder := googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, settings.GeminiAPIKey, httpClient)
		if encoder == nil {
			logger.Warn("Gemini embeddings are unavailable, indexing falls back to tf-idf")
			return nil
		}
		return encoder
	case "openai":
		return openaiEmbedding.NewEncoder(settings.EncoderBaseURL, settings.EncoderAPIKey, settings.EncoderModel, httpClient)
	default:
		logger.Info("No dense encoder configured, indexing uses tf-idf", "provider", settings.EncoderProvider)
		return nil
	}
}

func newStores(ctx context.Context, settings config.Settings, logger *logger_i.Logger) (documentModel.AnswerCache, documentModel.HistoryStore) {
	var answerCache documentModel.AnswerCache
	var history documentModel.HistoryStore

	if cache := store.GetRedisAnswerCache(ctx, settings.RedisAddr, settings.RedisPassword); cache != nil {
		answerCache = cache
	} else {
		logger.Warn("Redis answer cache is offline, using memory")
		answerCache = store.InitInMemoryAnswerCache()
	}
	if redisHistory := store.GetRedisHistoryStore(ctx, settings.RedisAddr, settings.RedisPassword); redisHistory != nil {
		history = redisHistory
	} else {
		logger.Warn("Redis history store is offline, using memory")
		history = store.InitInMemoryHistoryStore()
	}
	return answerCache, history
}
