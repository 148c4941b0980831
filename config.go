package prayerkit

import (
	"errors"
	"time"

	"github.com/lumenworks/prayerkit/tier"
)

// Config defines a public type used by prayerkit APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Tier    TierConfig
	Audit   AuditConfig
	Metrics MetricsConfig
	HTTP    HTTPConfig
}

/*
====================================
TIER CONFIG
====================================
*/

// TierConfig carries the tier-to-ceiling table consumed by the reconciler.
// The table is deployment configuration; a nil table resolves to
// [tier.DefaultTable].
type TierConfig struct {
	Table tier.Table
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by prayerkit APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by prayerkit APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig shapes the outbound transport: every authenticated request
// carries the bearer token and a JSON content type; UserAgent and Timeout
// apply to the backend client built on top.
type HTTPConfig struct {
	UserAgent string
	Timeout   time.Duration
}

func defaultConfig() Config {
	return Config{
		Tier: TierConfig{Table: tier.DefaultTable()},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{Enabled: true},
		HTTP: HTTPConfig{
			UserAgent: "prayerkit/1",
			Timeout:   30 * time.Second,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.Tier.Table != nil {
		table := make(tier.Table, len(cfg.Tier.Table))
		for k, v := range cfg.Tier.Table {
			table[k] = v
		}
		out.Tier.Table = table
	}
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (c Config) Validate() error {
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must be >= 0")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("http timeout must be >= 0")
	}
	for name, ceilings := range c.Tier.Table {
		if name == "" {
			return errors.New("tier table contains an empty tier name")
		}
		if ceilings.MaxPrayers < tier.Unlimited ||
			ceilings.MaxPrayOnIt < tier.Unlimited ||
			ceilings.MaxVoiceSlots < tier.Unlimited {
			return errors.New("tier ceilings must be >= -1")
		}
	}
	return nil
}
