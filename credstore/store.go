package credstore

import "context"

// Logical entry names. Implementations may prefix them but never reinterpret
// them; the session core is the only writer.
const (
	// KeyAuthToken is an exported constant or variable used by the credential store.
	KeyAuthToken = "auth_token"
	// KeyUserID is an exported constant or variable used by the credential store.
	KeyUserID = "user_id"
	// KeyUserEmail is an exported constant or variable used by the credential store.
	KeyUserEmail = "user_email"
	// KeyUserName is an exported constant or variable used by the credential store.
	KeyUserName = "user_name"
	// KeyUserStatus is an exported constant or variable used by the credential store.
	KeyUserStatus = "user_status"
	// KeyUserTier is an exported constant or variable used by the credential store.
	KeyUserTier = "user_tier"
	// KeyUserExpiresAt is an exported constant or variable used by the credential store.
	KeyUserExpiresAt = "user_expires_at"
	// KeyUserSettings is an exported constant or variable used by the credential store.
	KeyUserSettings = "user_settings"

	// KeyCachedPrayers is an exported constant or variable used by the credential store.
	KeyCachedPrayers = "cached_prayers"
	// KeyCachedPrayOnIt is an exported constant or variable used by the credential store.
	KeyCachedPrayOnIt = "cached_pray_on_it"
)

// SessionKeys returns every key owned by the session tuple. Login replaces
// exactly this set; optional keys absent from a login (subscription expiry)
// are removed rather than left over from a previous user.
func SessionKeys() []string {
	return []string{
		KeyAuthToken,
		KeyUserID,
		KeyUserEmail,
		KeyUserName,
		KeyUserStatus,
		KeyUserTier,
		KeyUserExpiresAt,
		KeyUserSettings,
	}
}

// CacheKeys returns the collaborator-owned cache entries the core clears on
// logout to prevent cross-user leakage.
func CacheKeys() []string {
	return []string{KeyCachedPrayers, KeyCachedPrayOnIt}
}

// Store is the durable key-value surface consumed by the session core.
//
// ReplaceAll and DeleteAll are atomic with respect to process restarts: a
// reader after restart observes either the previous set or the new set,
// never a mixture.
type Store interface {
	// Get reads one entry. The second return reports presence.
	Get(ctx context.Context, key string) (string, bool, error)
	// GetAll reads the given entries in one round trip. Missing keys are
	// absent from the result rather than errors.
	GetAll(ctx context.Context, keys ...string) (map[string]string, error)
	// ReplaceAll atomically deletes every owned key, then writes entries.
	ReplaceAll(ctx context.Context, owned []string, entries map[string]string) error
	// DeleteAll atomically removes the given keys. Deleting an absent key is
	// a no-op, so DeleteAll is idempotent.
	DeleteAll(ctx context.Context, keys ...string) error
	// Close releases any underlying resources.
	Close() error
}
