package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

const (
	lockPrefix    = "inventario:workflow:lock:"
	lockRetry     = 50 * time.Millisecond
	unlockTimeout = 2 * time.Second
)

// Solo borra la llave si todavía tiene el token de quien la tomó.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLocker lock por usuario compartido entre instancias de la API (SET NX PX + token).
// Dentro del proceso las peticiones hacen cola en un KeyedMutex antes de ir a Redis.
//
// lease acota cuánto sobrevive un lock si su dueño muere; debe superar la petición más larga.
// wait es cuánto espera Lock antes de devolver domain.ErrSessionBusy.
type RedisLocker struct {
	rdb   *redis.Client
	local *KeyedMutex
	lease time.Duration
	wait  time.Duration
	log   zerolog.Logger
}

// NewRedisLocker construye el locker.
func NewRedisLocker(rdb *redis.Client, lease, wait time.Duration, log zerolog.Logger) *RedisLocker {
	return &RedisLocker{rdb: rdb, local: NewKeyedMutex(), lease: lease, wait: wait, log: log}
}

func lockKey(userID int64) string {
	return lockPrefix + strconv.FormatInt(userID, 10)
}

// Lock toma el lock del usuario o falla con domain.ErrSessionBusy (tiempo agotado),
// domain.ErrConnectionUnavailable (Redis caído) o el error de ctx.
func (l *RedisLocker) Lock(ctx context.Context, userID int64) (func(), error) {
	unlockLocal, _ := l.local.Lock(ctx, userID)
	key := lockKey(userID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.lease).Result()
		if err != nil {
			unlockLocal()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: redis lock %d: %v", domain.ErrConnectionUnavailable, userID, err)
		}
		if ok {
			break
		}
		if !time.Now().Before(deadline) {
			unlockLocal()
			return nil, domain.ErrSessionBusy
		}
		select {
		case <-ctx.Done():
			unlockLocal()
			return nil, ctx.Err()
		case <-time.After(lockRetry):
		}
	}

	return func() {
		// contexto propio: la petición pudo cancelarse y el lock igual debe soltarse
		ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
			l.log.Warn().Err(err).Int64("user_id", userID).Msg("liberar lock de sesión; expira por lease")
		}
		unlockLocal()
	}, nil
}
