// Command prayerkit-demo wires the session core end to end against a real
// backend: restore-or-login, a profile fetch through the authorizing
// transport, and a tier reconciliation pass over the live resource counts.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lumenworks/prayerkit"
	"github.com/lumenworks/prayerkit/backend"
	"github.com/lumenworks/prayerkit/credstore"
	"github.com/lumenworks/prayerkit/tier"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	baseURL := os.Getenv("PRAYERKIT_BACKEND_URL")
	if baseURL == "" {
		logger.Fatal().Msg("PRAYERKIT_BACKEND_URL is required")
	}

	store, err := openStore(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open credential store")
	}
	defer store.Close()

	core, err := prayerkit.New().
		WithStore(store).
		WithLogger(logger).
		WithAuditSink(prayerkit.NewJSONWriterSink(os.Stdout)).
		Build()
	if err != nil {
		logger.Fatal().Err(err).Msg("build core")
	}
	defer core.Close()

	core.Bus().Subscribe(prayerkit.EventSessionExpired, func(any) {
		logger.Warn().Msg("session expired, please log in again")
	})
	core.Bus().Subscribe(prayerkit.EventTierResolved, func(any) {
		logger.Info().Msg("tier enforcement resolved")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := backend.NewClient(baseURL, core, logger)

	restored, err := core.Session().LoadPersisted(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("load persisted session")
	}
	if !restored {
		email := os.Getenv("PRAYERKIT_EMAIL")
		password := os.Getenv("PRAYERKIT_PASSWORD")
		if email == "" || password == "" {
			logger.Fatal().Msg("no persisted session; set PRAYERKIT_EMAIL and PRAYERKIT_PASSWORD")
		}
		token, user, err := client.Login(ctx, email, password)
		if err != nil {
			logger.Fatal().Err(err).Msg("login exchange")
		}
		if err := core.Session().Login(ctx, token, user); err != nil {
			logger.Fatal().Err(err).Msg("commit session")
		}
	}

	user, _ := core.Session().CurrentUser()
	fmt.Printf("logged in as %s (%s, tier %s)\n", user.Name, user.Email, user.Tier)

	prayers, err := client.PrayerCount(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("prayer count")
	}
	prayOnIt, err := client.PrayOnItCount(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("pray-on-it count")
	}

	state := core.BeginEnforcement(tier.Counts{Prayers: prayers, PrayOnIt: prayOnIt})
	if state.WithinLimits {
		fmt.Printf("within limits: %d prayers, %d pray-on-it items\n", prayers, prayOnIt)
		return
	}
	fmt.Printf("over limit: %v, delete items to continue\n", state.Overage)
}

func openStore(logger zerolog.Logger) (credstore.Store, error) {
	if addr := os.Getenv("PRAYERKIT_REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		logger.Info().Str("addr", addr).Msg("using redis credential store")
		return credstore.NewRedisStore(rdb, os.Getenv("PRAYERKIT_REDIS_PREFIX")), nil
	}

	path := os.Getenv("PRAYERKIT_STATE_FILE")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = home + "/.prayerkit/state.json"
	}
	logger.Info().Str("path", path).Msg("using file credential store")
	return credstore.NewFileStore(path)
}
