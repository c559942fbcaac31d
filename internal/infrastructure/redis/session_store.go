package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-backoffice/internal/application/cart"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

var _ cart.SessionStore = (*SessionStore)(nil)

const sessionKeyPrefix = "pos:session:"

// SessionStore guarda las sesiones de terminal en Redis como JSON con TTL.
// Cada Save renueva el TTL: una terminal inactiva pierde su carrito privado al expirar.
type SessionStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewSessionStore construye el store.
func NewSessionStore(rdb *goredis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess entity.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, session *entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+session.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
