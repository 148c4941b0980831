package flows

import (
	"context"

	"github.com/lumenworks/prayerkit/credstore"
)

// CredentialStore is the flow-local view of the durable key-value store.
type CredentialStore interface {
	GetAll(ctx context.Context, keys ...string) (map[string]string, error)
	ReplaceAll(ctx context.Context, owned []string, entries map[string]string) error
	DeleteAll(ctx context.Context, keys ...string) error
}

// PersistedSession is the flow-local wire shape of one persisted session.
// Every field is a string because the store is a string key-value surface;
// the host decodes tier, status, and the settings blob.
type PersistedSession struct {
	Token        string
	UserID       string
	Email        string
	Name         string
	Status       string
	Tier         string
	ExpiresAt    string
	SettingsBlob string
}

// SessionDeps captures session flow dependencies.
type SessionDeps struct {
	Store CredentialStore
}

// RunLoadPersisted reads the persisted session key set. The second return is
// false unless the required tuple (token, id, email, name) is fully present;
// a partial set is never surfaced as authenticated. The record itself is
// returned either way so the host can distinguish "nothing persisted" from
// "partial state rejected".
func RunLoadPersisted(ctx context.Context, deps SessionDeps) (PersistedSession, bool, error) {
	values, err := deps.Store.GetAll(ctx, credstore.SessionKeys()...)
	if err != nil {
		return PersistedSession{}, false, err
	}

	rec := PersistedSession{
		Token:        values[credstore.KeyAuthToken],
		UserID:       values[credstore.KeyUserID],
		Email:        values[credstore.KeyUserEmail],
		Name:         values[credstore.KeyUserName],
		Status:       values[credstore.KeyUserStatus],
		Tier:         values[credstore.KeyUserTier],
		ExpiresAt:    values[credstore.KeyUserExpiresAt],
		SettingsBlob: values[credstore.KeyUserSettings],
	}

	if rec.Token == "" || rec.UserID == "" || rec.Email == "" || rec.Name == "" {
		return rec, false, nil
	}
	return rec, true, nil
}

// Partial reports whether any field of the record is populated. Used to tell
// a rejected partial restore apart from a clean anonymous start.
func (r PersistedSession) Partial() bool {
	return r != (PersistedSession{})
}

// RunPersistLogin atomically replaces the persisted session key set with the
// given record. The optional expiry key is dropped when empty so a previous
// user's expiry can never leak into the new session.
func RunPersistLogin(ctx context.Context, rec PersistedSession, deps SessionDeps) error {
	entries := map[string]string{
		credstore.KeyAuthToken:    rec.Token,
		credstore.KeyUserID:       rec.UserID,
		credstore.KeyUserEmail:    rec.Email,
		credstore.KeyUserName:     rec.Name,
		credstore.KeyUserStatus:   rec.Status,
		credstore.KeyUserTier:     rec.Tier,
		credstore.KeyUserSettings: rec.SettingsBlob,
	}
	if rec.ExpiresAt != "" {
		entries[credstore.KeyUserExpiresAt] = rec.ExpiresAt
	}

	return deps.Store.ReplaceAll(ctx, credstore.SessionKeys(), entries)
}

// RunClearSession removes every persisted auth field and every cached
// resource collection in one atomic delete.
func RunClearSession(ctx context.Context, deps SessionDeps) error {
	keys := append(credstore.SessionKeys(), credstore.CacheKeys()...)
	return deps.Store.DeleteAll(ctx, keys...)
}
