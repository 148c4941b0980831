package credstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStoreTest(t *testing.T) (*RedisStore, *redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb, "pk")
	return store, rdb, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRedisReplaceAllCommitsAsUnit(t *testing.T) {
	store, rdb, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	err := store.ReplaceAll(ctx, SessionKeys(), map[string]string{
		KeyAuthToken: "tok-1",
		KeyUserID:    "u-1",
		KeyUserEmail: "a@example.com",
		KeyUserName:  "User A",
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	values, err := store.GetAll(ctx, SessionKeys()...)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if values[KeyAuthToken] != "tok-1" || values[KeyUserEmail] != "a@example.com" {
		t.Fatalf("unexpected values: %+v", values)
	}
	if _, ok := values[KeyUserExpiresAt]; ok {
		t.Fatal("absent optional key must stay absent")
	}

	// Keys are namespaced under the prefix.
	if val, err := rdb.Get(ctx, "pk:"+KeyAuthToken).Result(); err != nil || val != "tok-1" {
		t.Fatalf("prefixed key lookup: %q %v", val, err)
	}
}

func TestRedisReplaceAllDropsStaleOwnedKeys(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	err := store.ReplaceAll(ctx, SessionKeys(), map[string]string{
		KeyAuthToken:     "tok-1",
		KeyUserID:        "u-1",
		KeyUserExpiresAt: "2027-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("first replace: %v", err)
	}

	// The next session has no expiry; the stale key must not survive.
	err = store.ReplaceAll(ctx, SessionKeys(), map[string]string{
		KeyAuthToken: "tok-2",
		KeyUserID:    "u-2",
	})
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}

	if _, ok, err := store.Get(ctx, KeyUserExpiresAt); err != nil || ok {
		t.Fatalf("stale expiry survived the replace (ok=%v err=%v)", ok, err)
	}
	if val, ok, _ := store.Get(ctx, KeyAuthToken); !ok || val != "tok-2" {
		t.Fatalf("expected tok-2, got %q ok=%v", val, ok)
	}
}

func TestRedisDeleteAllIdempotent(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	err := store.ReplaceAll(ctx, SessionKeys(), map[string]string{
		KeyAuthToken:      "tok-1",
		KeyCachedPrayers:  `["p"]`,
		KeyCachedPrayOnIt: `["q"]`,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	all := append(SessionKeys(), CacheKeys()...)
	if err := store.DeleteAll(ctx, all...); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.DeleteAll(ctx, all...); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	values, err := store.GetAll(ctx, all...)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected empty store, got %+v", values)
	}
}

func TestRedisGetMissingKey(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()

	val, ok, err := store.Get(context.Background(), KeyAuthToken)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || val != "" {
		t.Fatalf("missing key reported present: %q", val)
	}
}

func TestRedisUnavailableSurfacesSentinel(t *testing.T) {
	store, rdb, done := newRedisStoreTest(t)
	done() // close backend before use
	_ = rdb

	_, _, err := store.Get(context.Background(), KeyAuthToken)
	if !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
