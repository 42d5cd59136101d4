package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisStorage_URLInvalida(t *testing.T) {
	_, err := NewRedisStorage(context.Background(), "http://no-es-redis")
	assert.Error(t, err)
}

func TestNewRedisStorage_SinServidor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewRedisStorage(ctx, "redis://127.0.0.1:1/0")
	assert.Error(t, err)
}

// Claves vacías no llegan a Redis: el cliente apunta a un puerto cerrado y aun así no hay error.
func TestRedisStorage_ClaveVaciaEsNoOp(t *testing.T) {
	s := &RedisStorage{client: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), prefix: defaultPrefix}
	defer s.Close()

	v, err := s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, s.Set("", []byte("1"), time.Minute))
	assert.NoError(t, s.Set("k", nil, time.Minute))
	assert.NoError(t, s.Delete(""))
	assert.Equal(t, "farmadist:ratelimit:10.0.0.1", s.key("10.0.0.1"))
}
