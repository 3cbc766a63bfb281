package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/LegalDocAPI/internal/adapter/utils"
	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/handlers"
	"github.com/akolanti/LegalDocAPI/internal/middleware"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
)

var server *http.Server

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	// closes qdrant and redis once in-flight requests are done
	CloseServices func()
}

type Routes struct {
	Documents *handlers.DocumentHandler
	// optional, mounted at /mcp
	MCP http.Handler
}

// NewRouter mounts every route behind the trace, rate limit and metrics middleware.
func NewRouter(corsOriginPattern string, routes Routes) http.Handler {
	r := utils.NewRouter(corsOriginPattern)
	h := routes.Documents

	r.Router.Get("/health", middleware.Wrap(h.Health))
	r.Router.Post("/upload", middleware.Wrap(h.Upload))
	r.Router.Post("/summarize", middleware.Wrap(h.Summarize))
	r.Router.Post("/index", middleware.Wrap(h.Index))
	r.Router.Post("/ask", middleware.Wrap(h.Ask))
	r.Router.Post("/search", middleware.Wrap(h.Search))
	r.Router.Post("/risk", middleware.Wrap(h.Risk))
	r.Router.Get("/documents", middleware.Wrap(h.ListDocuments))
	r.Router.Get("/documents/{id}", middleware.Wrap(h.GetDocument))
	r.Router.Get("/documents/{id}/history", middleware.Wrap(h.GetHistory))

	if routes.MCP != nil {
		r.Router.Handle("/mcp", middleware.Handler(routes.MCP))
	}
	return r.Router
}

func CreateServer(listenAddr string, handler http.Handler) {
	_logger := logger_i.NewLogger("Server")
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
		close(crashed)
	}
}

// crashed lets main stop when the listener cannot start
var crashed = make(chan struct{})

func Crashed() <-chan struct{} {
	return crashed
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger := logger_i.NewLogger("Server")
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully", "error", err)
			}
		}

		if shutdownParams.CloseServices != nil {
			shutdownParams.CloseServices()
		}
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
		close(shutdownParams.StopExecution)
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
