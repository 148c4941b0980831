package prayerkit

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	internalaudit "github.com/lumenworks/prayerkit/internal/audit"
)

const (
	auditEventLogin               = "login"
	auditEventLogout              = "logout"
	auditEventSessionInvalidated  = "session_invalidated"
	auditEventSessionRestored     = "session_restored"
	auditEventRestoreRejected     = "session_restore_rejected"
	auditEventSettingsCorrupt     = "settings_blob_corrupt"
	auditEventProfileRefreshed    = "profile_refreshed"
	auditEventEnforcementEntered  = "enforcement_entered"
	auditEventEnforcementResolved = "enforcement_resolved"
)

// AuditEvent is the structured record emitted for every session lifecycle
// transition.
type AuditEvent = internalaudit.Event

// AuditSink receives emitted audit events. Sinks run on the dispatcher
// goroutine and should not block for long.
type AuditSink = internalaudit.Sink

// NoOpSink drops audit events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink buffers audit events in a channel for consumption by tests or
// an uploader.
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink describes the newchannelsink operation and its observable behavior.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// emitAudit stamps identity and timing onto an event and hands it to the
// dispatcher. Safe on a nil dispatcher.
func emitAudit(d *internalaudit.Dispatcher, eventType string, user User, success bool, errText string) {
	if d == nil {
		return
	}
	d.Emit(context.Background(), AuditEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    user.ID,
		Email:     user.Email,
		Tier:      string(user.Tier),
		Success:   success,
		Error:     errText,
	})
}
