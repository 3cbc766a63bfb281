package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/data/redisStore"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
)

type RedisHistoryStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisHistoryStore returns nil when redis is unreachable.
func GetRedisHistoryStore(ctx context.Context, addr string, password string) *RedisHistoryStore {
	s := redisStore.GetRedisStore(ctx, redisStore.Options{Addr: addr, Password: password, DB: config.RedisHistoryStore})
	if s == nil {
		return nil
	}
	return TestHistoryStore(s)
}

func TestHistoryStore(store *redisStore.Store) *RedisHistoryStore {
	return &RedisHistoryStore{
		store:  store,
		logger: logger_i.NewLogger("HistoryStore"),
	}
}

func (s *RedisHistoryStore) Append(ctx context.Context, docId string, exchange documentModel.Exchange) error {
	log := s.logger.WithContext(ctx).With("doc_id", docId)
	data, err := json.Marshal(exchange)
	if err != nil {
		return err
	}
	if err = s.store.ListPush(ctx, config.HistoryKeyPrefix+docId, data); err != nil {
		log.Error("error saving exchange", "error", err)
		return err
	}
	if err = s.store.ListKeepLast(ctx, config.HistoryKeyPrefix+docId, config.HistoryLimit); err != nil {
		log.Warn("could not trim history", "error", err)
	}
	log.Debug("Saved exchange successfully")
	return nil
}

func (s *RedisHistoryStore) Recent(ctx context.Context, docId string) ([]documentModel.Exchange, error) {
	log := s.logger.WithContext(ctx).With("doc_id", docId)
	res, err := s.store.ListGetLast(ctx, config.HistoryKeyPrefix+docId, config.HistoryLimit)
	if err != nil {
		log.Error("Error getting history", "error", err)
		return nil, err
	}

	exchanges := make([]documentModel.Exchange, 0, len(res))
	for i := len(res) - 1; i >= 0; i-- {
		var e documentModel.Exchange
		if err := json.Unmarshal([]byte(res[i]), &e); err != nil {
			log.Warn("skipping unreadable exchange", "error", err)
			continue
		}
		exchanges = append(exchanges, e)
	}
	return exchanges, nil
}
