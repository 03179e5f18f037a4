// Package redis guarda los borradores del editor de builds en Redis con expiración.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-hardware/internal/application/ports"
	"github.com/jhoicas/inventario-hardware/internal/domain/build"
	"github.com/jhoicas/inventario-hardware/pkg/config"
)

var _ ports.DraftStore = (*DraftStore)(nil)

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// DraftStore implementa ports.DraftStore con un valor JSON por borrador.
type DraftStore struct {
	rdb *goredis.Client
}

func NewDraftStore(rdb *goredis.Client) *DraftStore { return &DraftStore{rdb: rdb} }

func draftKey(id string) string { return fmt.Sprintf("build:draft:%s", id) }

func (s *DraftStore) Save(ctx context.Context, d build.Draft, ttl time.Duration) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.rdb.Set(ctx, draftKey(d.ID), b, ttl).Err(); err != nil {
		return fmt.Errorf("save draft %s: %w", d.ID, err)
	}
	return nil
}

func (s *DraftStore) Get(ctx context.Context, id string) (*build.Draft, error) {
	b, err := s.rdb.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load draft %s: %w", id, err)
	}
	var d build.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &d, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	return nil
}
