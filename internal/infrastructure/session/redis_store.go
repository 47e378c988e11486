package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-movimientos/internal/application/workflow"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

var _ workflow.SessionStore = (*RedisStore)(nil)

const keyPrefix = "inventario:workflow:session:"

// RedisStore sesiones como JSON en Redis, una llave por usuario con TTL renovado en cada Save.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore construye el almacén sobre un cliente ya configurado.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: redis ping: %v", domain.ErrConnectionUnavailable, err)
	}
	return rdb, nil
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

func (r *RedisStore) Load(ctx context.Context, userID int64) (*workflow.Session, error) {
	data, err := r.rdb.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return workflow.NewSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session %d: %w", userID, err)
	}
	return decode(data, userID)
}

func (r *RedisStore) Save(ctx context.Context, s *workflow.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, key(s.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %d: %w", s.UserID, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := r.rdb.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del session %d: %w", userID, err)
	}
	return nil
}

func decode(data []byte, userID int64) (*workflow.Session, error) {
	s := workflow.NewSession(userID)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode session %d: %w", userID, err)
	}
	if s.Items == nil {
		s.Items = []entity.StagedItem{}
	}
	return s, nil
}
