package prayerkit

// Event names published on the core's bus. Neither event carries a payload:
// subscribers re-query current state instead of trusting a stale snapshot.
const (
	// EventSessionExpired is an exported constant or variable used by the session core.
	EventSessionExpired = "session.expired"
	// EventTierResolved is an exported constant or variable used by the session core.
	EventTierResolved = "tier.enforcement.resolved"
)
