package credstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the credential store.
var ErrRedisUnavailable = errors.New("redis unavailable")

const replaceAllScript = `
local owned = tonumber(ARGV[1])
for i = 1, owned do
  redis.call("DEL", KEYS[i])
end
for i = owned + 1, #KEYS do
  redis.call("SET", KEYS[i], ARGV[i - owned + 1])
end
return #KEYS - owned
`

var replaceAllLua = redis.NewScript(replaceAllScript)

// RedisStore persists session entries in Redis under a common prefix.
// Multi-key mutations run inside a Lua script so the key set is replaced or
// cleared as a unit.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. prefix namespaces every key
// ("pk" yields pk:auth_token and so on); an empty prefix defaults to "pk".
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "pk"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + ":" + k
}

// Get implements [Store].
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return val, true, nil
}

// GetAll implements [Store] via a single MGET.
func (s *RedisStore) GetAll(ctx context.Context, keys ...string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}

	vals, err := s.rdb.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	out := make(map[string]string, len(keys))
	for i, v := range vals {
		if v == nil {
			continue
		}
		switch typed := v.(type) {
		case string:
			out[keys[i]] = typed
		default:
			out[keys[i]] = fmt.Sprint(typed)
		}
	}
	return out, nil
}

// ReplaceAll implements [Store]. The owned keys are deleted and the new
// entries written inside one Lua script, so a concurrent reader or a crash
// never observes a partially replaced session.
func (s *RedisStore) ReplaceAll(ctx context.Context, owned []string, entries map[string]string) error {
	scriptKeys := make([]string, 0, len(owned)+len(entries))
	for _, k := range owned {
		scriptKeys = append(scriptKeys, s.key(k))
	}

	args := make([]interface{}, 0, len(entries)+1)
	args = append(args, strconv.Itoa(len(owned)))
	for k, v := range entries {
		scriptKeys = append(scriptKeys, s.key(k))
		args = append(args, v)
	}

	if err := replaceAllLua.Run(ctx, s.rdb, scriptKeys, args...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// DeleteAll implements [Store]. A single DEL covers every key atomically.
func (s *RedisStore) DeleteAll(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}
	if err := s.rdb.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Close implements [Store]. The wrapped client is caller-owned and left
// open.
func (s *RedisStore) Close() error {
	return nil
}
