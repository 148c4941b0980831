package test

import (
	"context"
	"testing"

	"github.com/lumenworks/prayerkit"
	"github.com/lumenworks/prayerkit/tier"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = prayerkit.New

	var _ *prayerkit.Core
	var _ prayerkit.Config
	var _ prayerkit.User
	var _ prayerkit.Settings
	var _ prayerkit.SessionState
	var _ prayerkit.RequestDescriptor
	var _ prayerkit.SettingsCache
	var _ prayerkit.CacheClearer
	var _ prayerkit.AuditEvent
	var _ prayerkit.AuditSink

	var _ error = prayerkit.ErrUnauthorized
	var _ error = prayerkit.ErrCoreNotReady
	var _ error = prayerkit.ErrBuilderReused
	var _ error = prayerkit.ErrIncompleteSession
	var _ error = prayerkit.ErrSessionMismatch
	var _ error = prayerkit.ErrStoreUnavailable
	var _ error = prayerkit.ErrSettingsCorrupt

	var _ func(*prayerkit.SessionManager, context.Context, string, prayerkit.User) error = (*prayerkit.SessionManager).Login
	var _ func(*prayerkit.SessionManager, context.Context) (bool, error) = (*prayerkit.SessionManager).LoadPersisted
	var _ func(*prayerkit.SessionManager, context.Context) error = (*prayerkit.SessionManager).Logout
	var _ func(*prayerkit.SessionManager, context.Context) error = (*prayerkit.SessionManager).Invalidate
	var _ func(*prayerkit.RequestAuthorizer, string, string) (prayerkit.RequestDescriptor, error) = (*prayerkit.RequestAuthorizer).Authorize
	var _ func(*prayerkit.ResponseInterceptor, int) = (*prayerkit.ResponseInterceptor).Observe

	var _ tier.Tier = tier.Free
	var _ tier.Tier = tier.Pro
	var _ tier.Tier = tier.Warrior
}
