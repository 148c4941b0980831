package test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lumenworks/prayerkit"
	"github.com/lumenworks/prayerkit/credstore"
	"github.com/lumenworks/prayerkit/tier"
)

func newLifecycleStore(t *testing.T) (*credstore.RedisStore, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := credstore.NewRedisStore(rdb, "pk")

	return store, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func buildCore(t *testing.T, store credstore.Store) *prayerkit.Core {
	t.Helper()

	core, err := prayerkit.New().WithStore(store).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	t.Cleanup(func() { core.Close() })
	return core
}

func makeUser(id string) prayerkit.User {
	expires := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	return prayerkit.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "User " + id,
		Status:    prayerkit.AccountActive,
		Tier:      tier.Pro,
		ExpiresAt: &expires,
		Settings:  prayerkit.DefaultSettings(),
	}
}
