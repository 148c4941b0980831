package prayerkit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumenworks/prayerkit/bus"
	"github.com/lumenworks/prayerkit/credstore"
	internalaudit "github.com/lumenworks/prayerkit/internal/audit"
	"github.com/lumenworks/prayerkit/internal/flows"
	"github.com/lumenworks/prayerkit/tier"
)

// SessionManager owns the in-memory session state machine and is the single
// source of truth for "who is logged in".
//
// The (token, user, state) tuple is guarded by one mutex held for the full
// duration of every mutation, so the tuple is never observable partially
// populated. Two states exist: anonymous and authenticated. Login moves
// forward, Logout and Invalidate move back, and there is no refreshing
// intermediate because the protocol has no token-refresh flow.
type SessionManager struct {
	mu    sync.Mutex
	token string
	user  User
	state SessionState

	store         credstore.Store
	events        *bus.Bus
	logger        zerolog.Logger
	metrics       *Metrics
	audit         *internalaudit.Dispatcher
	settingsCache SettingsCache
	clearers      []CacheClearer
}

func newSessionManager(
	store credstore.Store,
	events *bus.Bus,
	logger zerolog.Logger,
	metrics *Metrics,
	audit *internalaudit.Dispatcher,
	settingsCache SettingsCache,
	clearers []CacheClearer,
) *SessionManager {
	if settingsCache == nil {
		settingsCache = NoOpSettingsCache{}
	}
	return &SessionManager{
		state:         StateAnonymous,
		store:         store,
		events:        events,
		logger:        logger,
		metrics:       metrics,
		audit:         audit,
		settingsCache: settingsCache,
		clearers:      clearers,
	}
}

// LoadPersisted reconstructs the session from the credential store at process
// start. It reports true only when a complete (token, id, email, name) tuple
// was present; anything less leaves the manager anonymous. A settings blob
// that fails to decode degrades silently to defaults and never fails startup.
func (m *SessionManager) LoadPersisted(ctx context.Context) (bool, error) {
	rec, ok, err := flows.RunLoadPersisted(ctx, flows.SessionDeps{Store: m.store})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		if rec.Partial() {
			m.metrics.Inc(MetricRestoreRejected)
			emitAudit(m.audit, auditEventRestoreRejected, User{ID: rec.UserID}, false, ErrIncompleteSession.Error())
			m.logger.Warn().Msg("persisted session incomplete, staying anonymous")
		}
		return false, nil
	}

	user := User{
		ID:       rec.UserID,
		Email:    rec.Email,
		Name:     rec.Name,
		Status:   AccountStatus(rec.Status),
		Tier:     tier.Normalize(rec.Tier),
		Settings: m.decodeSettings(rec.SettingsBlob, rec.UserID),
	}
	if user.Status == "" {
		user.Status = AccountActive
	}
	if rec.ExpiresAt != "" {
		if ts, err := time.Parse(time.RFC3339, rec.ExpiresAt); err == nil {
			user.ExpiresAt = &ts
		}
	}

	m.mu.Lock()
	m.token = rec.Token
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.settingsCache.Seed(user.Settings)
	m.metrics.Inc(MetricSessionRestored)
	emitAudit(m.audit, auditEventSessionRestored, user, true, "")
	m.logger.Info().Str("user_id", user.ID).Str("tier", string(user.Tier)).Msg("session restored")
	return true, nil
}

// Login commits the full session as a unit: every field is persisted to the
// credential store, the in-memory tuple flips to authenticated, and the
// voice collaborator's settings cache is seeded from the user's snapshot.
// Login is idempotent; calling it again replaces the session wholesale.
func (m *SessionManager) Login(ctx context.Context, token string, user User) error {
	if token == "" || !user.complete() {
		return ErrIncompleteSession
	}

	blob, err := json.Marshal(user.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	rec := flows.PersistedSession{
		Token:        token,
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Status:       string(user.Status),
		Tier:         string(user.Tier),
		SettingsBlob: string(blob),
	}
	if user.ExpiresAt != nil {
		rec.ExpiresAt = user.ExpiresAt.Format(time.RFC3339)
	}

	if err := flows.RunPersistLogin(ctx, rec, flows.SessionDeps{Store: m.store}); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.settingsCache.Seed(user.Settings)
	m.metrics.Inc(MetricLoginCommitted)
	emitAudit(m.audit, auditEventLogin, user, true, "")

	evt := m.logger.Info().Str("user_id", user.ID).Str("tier", string(user.Tier))
	if exp, ok := InspectToken(token); ok {
		evt = evt.Time("token_exp_hint", exp)
	}
	evt.Msg("session committed")
	return nil
}

// Logout clears the in-memory tuple, every persisted auth field, and every
// cached resource collection belonging to the session, so a newly logged-in
// user can never observe the previous user's content. Logout is
// unconditional and idempotent: an anonymous manager stays anonymous.
func (m *SessionManager) Logout(ctx context.Context) error {
	_, err := m.clear(ctx, false)
	m.metrics.Inc(MetricLogout)
	return err
}

// Invalidate is Logout plus a session-expired publication on the bus. It is
// triggered only by the response interceptor on a server-declared 401, never
// by feature code. The event fires once per authenticated-to-anonymous edge,
// so concurrent 401 observers produce a single notification.
func (m *SessionManager) Invalidate(ctx context.Context) error {
	wasAuthenticated, err := m.clear(ctx, true)
	if wasAuthenticated {
		m.metrics.Inc(MetricSessionInvalidated)
	}
	return err
}

// clear performs the shared logout path. The in-memory tuple is cleared
// first so no caller can reuse a stale token while persistence catches up;
// staleness is tolerated, state corruption is not.
func (m *SessionManager) clear(ctx context.Context, publish bool) (bool, error) {
	m.mu.Lock()
	wasAuthenticated := m.state == StateAuthenticated
	prev := m.user
	m.token = ""
	m.user = User{}
	m.state = StateAnonymous
	m.mu.Unlock()

	m.settingsCache.Clear()
	for _, c := range m.clearers {
		c.ClearCache()
	}

	var clearErr error
	if err := flows.RunClearSession(ctx, flows.SessionDeps{Store: m.store}); err != nil {
		clearErr = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		m.logger.Error().Err(err).Msg("clearing persisted session failed")
	}

	if wasAuthenticated {
		event := auditEventLogout
		if publish {
			event = auditEventSessionInvalidated
		}
		emitAudit(m.audit, event, prev, true, "")
		m.logger.Info().Str("user_id", prev.ID).Bool("invalidated", publish).Msg("session cleared")

		if publish && m.events != nil {
			m.events.Publish(EventSessionExpired, nil)
		}
	}
	return wasAuthenticated, clearErr
}

// RefreshProfile replaces the session's user record wholesale with updated
// backend values (settings and entitlement included). The record must belong
// to the currently authenticated user.
func (m *SessionManager) RefreshProfile(ctx context.Context, user User) error {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return ErrUnauthorized
	}
	if user.ID != m.user.ID {
		m.mu.Unlock()
		return ErrSessionMismatch
	}
	token := m.token
	m.user = user
	m.mu.Unlock()

	blob, err := json.Marshal(user.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	rec := flows.PersistedSession{
		Token:        token,
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Status:       string(user.Status),
		Tier:         string(user.Tier),
		SettingsBlob: string(blob),
	}
	if user.ExpiresAt != nil {
		rec.ExpiresAt = user.ExpiresAt.Format(time.RFC3339)
	}
	if err := flows.RunPersistLogin(ctx, rec, flows.SessionDeps{Store: m.store}); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	m.settingsCache.Seed(user.Settings)
	emitAudit(m.audit, auditEventProfileRefreshed, user, true, "")
	return nil
}

// Token returns the current bearer token. The second return is false while
// anonymous.
func (m *SessionManager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated || m.token == "" {
		return "", false
	}
	return m.token, true
}

// IsLoggedIn checks both the token and the state; either alone is not
// trusted, which guards against a future bug clearing one without the other.
func (m *SessionManager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && m.state == StateAuthenticated
}

// CurrentUser returns a read-only copy of the authenticated user.
func (m *SessionManager) CurrentUser() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return User{}, false
	}
	return m.user, true
}

// State reports the current lifecycle state.
func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// decodeSettings decodes the persisted blob, substituting defaults for an
// empty or corrupt snapshot. Corruption is recovered locally: it is logged
// and counted, never surfaced.
func (m *SessionManager) decodeSettings(blob, userID string) Settings {
	if blob == "" {
		return DefaultSettings()
	}
	var s Settings
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		m.metrics.Inc(MetricSettingsCorrupt)
		emitAudit(m.audit, auditEventSettingsCorrupt, User{ID: userID}, false, ErrSettingsCorrupt.Error())
		m.logger.Warn().Err(err).Msg("settings blob corrupt, using defaults")
		return DefaultSettings()
	}
	return s
}
