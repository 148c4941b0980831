package prayerkit

import (
	"net/http"
	"time"

	"github.com/lumenworks/prayerkit/tier"
)

// SessionState defines a public type used by prayerkit APIs.
//
// SessionState instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionState uint8

const (
	// StateAnonymous is an exported constant or variable used by the session core.
	StateAnonymous SessionState = iota
	// StateAuthenticated is an exported constant or variable used by the session core.
	StateAuthenticated
)

// String describes the state for logs and test failures.
func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AccountStatus represents the lifecycle state of a user account as reported
// by the backend.
type AccountStatus string

const (
	// AccountActive is an exported constant or variable used by the session core.
	AccountActive AccountStatus = "active"
	// AccountInactive is an exported constant or variable used by the session core.
	AccountInactive AccountStatus = "inactive"
)

// Settings is the per-user preference snapshot embedded in the session. It is
// persisted as a single opaque JSON blob; a blob that fails to decode is
// replaced wholesale by [DefaultSettings] and never fails startup.
type Settings struct {
	VoiceID          string  `json:"voice_id"`
	SpeechRate       float64 `json:"speech_rate"`
	BackgroundTrack  string  `json:"background_track"`
	DailyReminder    bool    `json:"daily_reminder"`
	ReminderHour     int     `json:"reminder_hour"`
	AutoplayOnUnlock bool    `json:"autoplay_on_unlock"`
}

// DefaultSettings returns the settings applied when no snapshot is persisted
// or the persisted snapshot is corrupt.
func DefaultSettings() Settings {
	return Settings{
		VoiceID:       "voice-default",
		SpeechRate:    1.0,
		DailyReminder: false,
		ReminderHour:  8,
	}
}

// User defines a public type used by prayerkit APIs.
//
// User instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// While a session is authenticated the canonical copy is owned by
// [SessionManager]; accessors return value copies only.
type User struct {
	ID        string
	Email     string
	Name      string
	Status    AccountStatus
	Tier      tier.Tier
	ExpiresAt *time.Time
	Settings  Settings
}

// complete reports whether the record carries every field required to
// reconstruct an authenticated session. Partial state is never surfaced as
// authenticated.
func (u User) complete() bool {
	return u.ID != "" && u.Email != "" && u.Name != ""
}

// RequestDescriptor is the authorized shape of an outbound request: method,
// target, and the headers every authenticated call must carry.
type RequestDescriptor struct {
	Method string
	URL    string
	Header http.Header
}

// SettingsCache is the seam to the voice/audio collaborator's settings cache.
// Login seeds it with the authenticated user's settings so the collaborator
// does not need a network round trip; Logout clears it.
type SettingsCache interface {
	Seed(Settings)
	Clear()
}

// CacheClearer is implemented by collaborator-owned resource caches (saved
// prayers, pray-on-it items) that must be emptied on logout so a subsequently
// authenticated user can never observe the previous user's content.
type CacheClearer interface {
	ClearCache()
}

// NoOpSettingsCache is the default [SettingsCache] when none is registered.
type NoOpSettingsCache struct{}

// Seed implements [SettingsCache].
func (NoOpSettingsCache) Seed(Settings) {}

// Clear implements [SettingsCache].
func (NoOpSettingsCache) Clear() {}
