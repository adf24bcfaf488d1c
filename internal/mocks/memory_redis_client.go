package mocks

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryRedisClient keeps string keys in a map. It serves GET, SET, INCR and
// PING; expirations are ignored.
type MemoryRedisClient struct {
	redis.UniversalClient

	mu   sync.Mutex
	data map[string]string
}

func NewMemoryRedisClient() *MemoryRedisClient {
	return &MemoryRedisClient{data: make(map[string]string)}
}

func (m *MemoryRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStringCmd(ctx, "get", key)

	v, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}

	cmd.SetVal(v)
	return cmd
}

func (m *MemoryRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	default:
		m.data[key] = fmt.Sprint(v)
	}

	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (m *MemoryRedisClient) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx, "incr", key)

	var n int64
	if v, ok := m.data[key]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			cmd.SetErr(fmt.Errorf("ERR value is not an integer or out of range"))
			return cmd
		}
		n = parsed
	}

	n++
	m.data[key] = strconv.FormatInt(n, 10)

	cmd.SetVal(n)
	return cmd
}

func (m *MemoryRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	cmd.SetVal("PONG")
	return cmd
}

// Len returns how many keys are stored.
func (m *MemoryRedisClient) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.data)
}
