// internal/library/store.go
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"scriptgen-workers/internal/common/config"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DateLayout = "2006-01-02"

var (
	ErrNotFound    = errors.New("LIBRARY_NOT_FOUND")
	ErrWriteFailed = errors.New("LIBRARY_WRITE_FAILED")
)

// Store keeps saved scripts as JSON strings under {prefix}:{id} and orders
// them by save time in the sorted set {prefix}:index.
type Store struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Logger

	now   func() time.Time
	newID func() string
}

func NewStore(rdb *redis.Client, cfg config.LibraryConfig) *Store {
	prefix := strings.TrimSuffix(cfg.KeyPrefix, ":")
	if prefix == "" {
		prefix = "script:library"
	}
	return &Store{
		rdb:    rdb,
		prefix: prefix,
		ttl:    config.GetDuration(cfg.TTL),
		logger: logger.NewNoOpLogger(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithLogger sets the logger used for index maintenance failures.
func (s *Store) WithLogger(log logger.Logger) *Store {
	if log != nil {
		s.logger = log
	}
	return s
}

func (s *Store) key(id string) string { return s.prefix + ":" + id }

func (s *Store) indexKey() string { return s.prefix + ":index" }

// Save assigns an id and creation date when missing and writes the entry.
func (s *Store) Save(ctx context.Context, script models.SavedScript) (*models.SavedScript, error) {
	now := s.now().UTC()
	if script.ID == "" {
		script.ID = s.newID()
	}
	if script.DateCreated == "" {
		script.DateCreated = now.Format(DateLayout)
	}

	data, err := json.Marshal(script)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %v", ErrWriteFailed, err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(script.ID), data, s.ttl)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(now.Unix()), Member: script.ID})
		return nil
	})
	if err != nil {
		// EXEC does not roll back commands that ran before the failing one.
		if delErr := s.rdb.Del(ctx, s.key(script.ID)).Err(); delErr != nil {
			s.logger.Warn("library: could not remove unindexed script", map[string]interface{}{
				"id":    script.ID,
				"error": delErr.Error(),
			})
		}
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return &script, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.SavedScript, error) {
	val, err := s.rdb.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var script models.SavedScript
	if err := json.Unmarshal([]byte(val), &script); err != nil {
		return nil, fmt.Errorf("decode script %s: %w", id, err)
	}
	return &script, nil
}

// List returns up to limit scripts, newest first. Index entries whose
// script has expired are dropped from the index.
func (s *Store) List(ctx context.Context, limit int) ([]models.SavedScript, error) {
	scripts := []models.SavedScript{}
	if limit <= 0 {
		return scripts, nil
	}

	ids, err := s.rdb.ZRevRange(ctx, s.indexKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return scripts, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var stale []interface{}
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var script models.SavedScript
		if err := json.Unmarshal([]byte(str), &script); err != nil {
			continue
		}
		scripts = append(scripts, script)
	}

	if len(stale) > 0 {
		if err := s.rdb.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			s.logger.Warn("library: could not prune expired index entries", map[string]interface{}{
				"count": len(stale),
				"error": err.Error(),
			})
		}
	}
	return scripts, nil
}
