package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/data/redisStore"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
)

type RedisAnswerCache struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisAnswerCache returns nil when redis is unreachable.
func GetRedisAnswerCache(ctx context.Context, addr string, password string) *RedisAnswerCache {
	s := redisStore.GetRedisStore(ctx, redisStore.Options{Addr: addr, Password: password, DB: config.RedisAnswerCache})
	if s == nil {
		return nil
	}
	return TestAnswerCache(s)
}

func TestAnswerCache(store *redisStore.Store) *RedisAnswerCache {
	return &RedisAnswerCache{
		store:  store,
		logger: logger_i.NewLogger("AnswerCache"),
	}
}

func (s *RedisAnswerCache) GetAnswer(ctx context.Context, key string) (documentModel.CachedAnswer, bool) {
	var answer documentModel.CachedAnswer
	log := s.logger.WithContext(ctx)
	val, err := s.store.Get(ctx, config.AnswerKeyPrefix+key)
	if s.store.IsNil(err) {
		return answer, false
	} else if err != nil {
		log.Error("Error reading cached answer", "error", err)
		return answer, false
	}

	if err = json.Unmarshal([]byte(val), &answer); err != nil {
		log.Error("Error unmarshalling cached answer", "error", err)
		return answer, false
	}
	log.Debug("Answer found in Redis")
	return answer, true
}

func (s *RedisAnswerCache) SaveAnswer(ctx context.Context, key string, answer documentModel.CachedAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	err = s.store.Set(ctx, config.AnswerKeyPrefix+key, data, config.RedisAnswerCacheTTL)
	if err != nil {
		s.logger.WithContext(ctx).Error("Error caching answer", "error", err)
	}
	return err
}
