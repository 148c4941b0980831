package prayerkit

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lumenworks/prayerkit/bus"
	"github.com/lumenworks/prayerkit/credstore"
	internalaudit "github.com/lumenworks/prayerkit/internal/audit"
	"github.com/lumenworks/prayerkit/tier"
)

// Builder defines a public type used by prayerkit APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// Build wires one [Core] for the process; there is no hidden global — every
// collaborator that needs session or entitlement data receives the Core (or
// a piece of it) explicitly.
type Builder struct {
	config Config
	store  credstore.Store
	events *bus.Bus
	logger zerolog.Logger

	auditSink     AuditSink
	settingsCache SettingsCache
	clearers      []CacheClearer

	loggerSet bool
	built     bool
}

// New describes the new operation and its observable behavior.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore sets the credential store. Required.
func (b *Builder) WithStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithBus supplies a shared event bus; Build creates one when absent.
func (b *Builder) WithBus(events *bus.Bus) *Builder {
	b.events = events
	return b
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	b.loggerSet = true
	return b
}

// WithAuditSink enables audit dispatch into the given sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithSettingsCache registers the voice collaborator's settings cache, to be
// seeded on login and cleared on logout.
func (b *Builder) WithSettingsCache(cache SettingsCache) *Builder {
	b.settingsCache = cache
	return b
}

// WithCacheClearer registers a collaborator-owned resource cache to be
// emptied on logout. May be called repeatedly.
func (b *Builder) WithCacheClearer(clearer CacheClearer) *Builder {
	if clearer != nil {
		b.clearers = append(b.clearers, clearer)
	}
	return b
}

// WithMetricsEnabled toggles counter collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithTierTable overrides the shipped tier-to-ceiling table.
func (b *Builder) WithTierTable(table tier.Table) *Builder {
	b.config.Tier.Table = table
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation or dependency wiring fails.
func (b *Builder) Build() (*Core, error) {
	if b.built {
		return nil, ErrBuilderReused
	}

	cfg := cloneConfig(b.config)

	if b.store == nil {
		return nil, fmt.Errorf("%w: credential store required", ErrCoreNotReady)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if !b.loggerSet {
		logger = zerolog.Nop()
	}

	events := b.events
	if events == nil {
		events = bus.New()
	}

	metrics := NewMetrics(cfg.Metrics)
	dispatcher := internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	session := newSessionManager(b.store, events, logger, metrics, dispatcher, b.settingsCache, b.clearers)
	authorizer := newRequestAuthorizer(session, metrics)
	interceptor := newResponseInterceptor(session, metrics)

	reconciler := tier.NewReconciler(cfg.Tier.Table)
	core := &Core{
		config:      cfg,
		logger:      logger,
		store:       b.store,
		events:      events,
		metrics:     metrics,
		audit:       dispatcher,
		session:     session,
		authorizer:  authorizer,
		interceptor: interceptor,
		reconciler:  reconciler,
	}
	core.enforcer = tier.NewEnforcer(reconciler, core.publishTierResolved)

	b.built = true
	return core, nil
}
