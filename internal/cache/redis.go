package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/emrgen/manuscript/internal/model"
)

const (
	documentVersionHash = "document:version"
	documentTTL         = time.Hour
)

func documentKey(id string) string {
	return "document:" + id
}

// Options configure the redis document cache. Passed in explicitly; the
// cache holds no process-wide connection state.
type Options struct {
	Addr     string
	Password string
	DB       int
}

var _ DocumentCache = (*RedisDocumentCache)(nil)

type RedisDocumentCache struct {
	client *redis.Client
}

func NewRedisDocumentCache(opts Options) *RedisDocumentCache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &RedisDocumentCache{client: client}
}

func (r *RedisDocumentCache) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	res := r.client.Get(ctx, documentKey(id.String()))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	doc := &model.Document{}
	if err := json.Unmarshal(buf, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *RedisDocumentCache) SetDocument(ctx context.Context, id uuid.UUID, doc *model.Document) error {
	marshal, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if err := p.Set(ctx, documentKey(id.String()), marshal, documentTTL).Err(); err != nil {
			return err
		}

		if err := p.HSet(ctx, documentVersionHash, id.String(), doc.Version).Err(); err != nil {
			return err
		}

		return nil
	})

	return err
}

func (r *RedisDocumentCache) GetVersion(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.client.HGet(ctx, documentVersionHash, id.String())
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, res.Err()
	}

	version, err := strconv.ParseInt(res.Val(), 10, 64)
	if err != nil {
		return 0, err
	}

	return version, nil
}

func (r *RedisDocumentCache) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if err := p.Del(ctx, documentKey(id.String())).Err(); err != nil {
			return err
		}

		return p.HDel(ctx, documentVersionHash, id.String()).Err()
	})

	return err
}
