package redisStore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instances = make(map[int]*Store)
	mu        sync.RWMutex
)

type Store struct {
	client *redis.Client
	Type   int
	logger *logger_i.Logger
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

// GetRedisStore returns one shared client per logical DB, or nil when redis is offline.
func GetRedisStore(ctx context.Context, opts Options) *Store {
	mu.RLock()
	instance, exists := instances[opts.DB]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[opts.DB]; exists {
		return instance
	}
	return createNewStore(ctx, opts)
}

// CloseAll closes every client opened through GetRedisStore.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for db, store := range instances {
		if err := store.client.Close(); err != nil {
			store.logger.Error("Error closing redis client", "error", err)
		}
		delete(instances, db)
	}
}

func createNewStore(ctx context.Context, opts Options) *Store {
	logger := logger_i.NewLogger("Redis Store").With("db", strconv.Itoa(opts.DB))
	newClient := redis.NewClient(&redis.Options{
		Addr:                  opts.Addr,
		Password:              opts.Password,
		DB:                    opts.DB,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.RedisPingTimeout)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "error", err.Error(), "addr", opts.Addr)
		_ = newClient.Close()
		return nil
	}

	logger.Info("Redis store init successfully", "addr", opts.Addr)

	newStore := &Store{
		client: newClient,
		Type:   opts.DB,
		logger: logger,
	}
	instances[opts.DB] = newStore
	return newStore
}

func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("test redis"),
	}
}
