package customHttpClient

import (
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/config"
)

var (
	customTransport *http.Transport
	once            sync.Once
)

// NewPooledClient returns a client sharing one keep-alive pool across the model servers.
// timeout bounds a whole request, including reading a long generation.
func NewPooledClient(timeout time.Duration) *http.Client {
	once.Do(func() {
		customTransport = http.DefaultTransport.(*http.Transport).Clone()
		customTransport.MaxIdleConns = config.MaxIdleConns
		customTransport.MaxIdleConnsPerHost = config.MaxIdleConnsPerHost
		customTransport.IdleConnTimeout = config.IdleConnTimeout
	})
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
