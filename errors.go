package prayerkit

import "errors"

var (
	// ErrUnauthorized is an exported constant or variable used by the session core.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCoreNotReady is an exported constant or variable used by the session core.
	ErrCoreNotReady = errors.New("core not initialized")
	// ErrBuilderReused is an exported constant or variable used by the session core.
	ErrBuilderReused = errors.New("builder already used")
	// ErrIncompleteSession is an exported constant or variable used by the session core.
	ErrIncompleteSession = errors.New("incomplete session material")
	// ErrSessionMismatch is an exported constant or variable used by the session core.
	ErrSessionMismatch = errors.New("profile does not belong to the current session")
	// ErrStoreUnavailable is an exported constant or variable used by the session core.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// ErrSettingsCorrupt marks a persisted settings blob that failed to
	// decode. It never escapes LoadPersisted: the session core recovers by
	// substituting defaults and logging at warn level.
	ErrSettingsCorrupt = errors.New("persisted settings corrupt")
)
