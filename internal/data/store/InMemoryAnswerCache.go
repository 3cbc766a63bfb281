package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
)

type cachedEntry struct {
	answer    documentModel.CachedAnswer
	expiresAt time.Time
}

// InMemoryAnswerCache stands in for redis. Expired entries are dropped on read.
type InMemoryAnswerCache struct {
	mu      sync.Mutex
	entries map[string]cachedEntry
	ttl     time.Duration
	now     func() time.Time
}

func InitInMemoryAnswerCache() *InMemoryAnswerCache {
	return &InMemoryAnswerCache{
		entries: make(map[string]cachedEntry),
		ttl:     config.RedisAnswerCacheTTL,
		now:     time.Now,
	}
}

func (c *InMemoryAnswerCache) GetAnswer(ctx context.Context, key string) (documentModel.CachedAnswer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, found := c.entries[key]
	if !found {
		return documentModel.CachedAnswer{}, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return documentModel.CachedAnswer{}, false
	}
	return entry.answer, true
}

func (c *InMemoryAnswerCache) SaveAnswer(ctx context.Context, key string, answer documentModel.CachedAnswer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cachedEntry{answer: answer, expiresAt: c.now().Add(c.ttl)}
	return nil
}
