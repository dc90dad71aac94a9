// Package redisstore caches session lookups so the hot /api/user path does
// not hit the relational store on every request. The cache is optional; the
// session middleware falls back to the database when it is absent or errors.
package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/personachat/server/internal/identity"
)

const sessionKeyPrefix = "session_user:"

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// GetSessionUser returns redis.Nil via the error when the key is absent.
func (s *Store) GetSessionUser(ctx context.Context, sessionID string) (*identity.User, error) {
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		return nil, err
	}
	var u identity.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetSessionUser(ctx context.Context, sessionID string, u *identity.User, ttl time.Duration) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+sessionID, data, ttl).Err()
}

func (s *Store) DeleteSessionUser(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
