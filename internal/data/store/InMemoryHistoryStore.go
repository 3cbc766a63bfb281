package store

import (
	"context"
	"sync"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
)

type InMemoryHistoryStore struct {
	historyLock *sync.RWMutex
	historyMap  map[string][]documentModel.Exchange
}

func InitInMemoryHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{
		historyLock: new(sync.RWMutex),
		historyMap:  make(map[string][]documentModel.Exchange),
	}
}

func (store *InMemoryHistoryStore) Append(ctx context.Context, docId string, exchange documentModel.Exchange) error {
	store.historyLock.Lock()
	defer store.historyLock.Unlock()
	history := append(store.historyMap[docId], exchange)
	// only the latest exchanges are ever read back
	if len(history) > config.HistoryLimit {
		history = history[len(history)-config.HistoryLimit:]
	}
	store.historyMap[docId] = history
	return nil
}

func (store *InMemoryHistoryStore) Recent(ctx context.Context, docId string) ([]documentModel.Exchange, error) {
	store.historyLock.RLock()
	defer store.historyLock.RUnlock()
	history := store.historyMap[docId]
	out := make([]documentModel.Exchange, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}
