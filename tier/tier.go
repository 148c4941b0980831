package tier

import "strings"

// Tier defines a public type used by prayerkit APIs.
//
// Tier instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Tier string

const (
	// Free is an exported constant or variable used by the tier reconciler.
	Free Tier = "free"
	// Pro is an exported constant or variable used by the tier reconciler.
	Pro Tier = "pro"
	// Warrior is an exported constant or variable used by the tier reconciler.
	Warrior Tier = "warrior"
)

// Unlimited marks a ceiling that never produces an overage.
const Unlimited = -1

// Normalize maps a backend-reported tier string onto a known [Tier].
// "lifetime" is a legacy alias for Warrior. Anything unrecognized, including
// the empty string, defaults to Free: absent entitlement data is an explicit
// downgrade-to-free policy, not an error.
func Normalize(raw string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case Pro:
		return Pro
	case Warrior, Tier("lifetime"):
		return Warrior
	default:
		return Free
	}
}

// ResourceKind names a tiered resource bucket.
type ResourceKind string

const (
	// KindPrayers is an exported constant or variable used by the tier reconciler.
	KindPrayers ResourceKind = "prayers"
	// KindPrayOnIt is an exported constant or variable used by the tier reconciler.
	KindPrayOnIt ResourceKind = "pray_on_it"
)

// Ceilings holds the per-resource maxima for one tier. A value of
// [Unlimited] disables the ceiling for that resource.
type Ceilings struct {
	MaxPrayers    int
	MaxPrayOnIt   int
	MaxVoiceSlots int
}

// Table maps each tier to its ceilings. The mapping is deployment
// configuration consumed by the reconciler, not server-delivered data.
type Table map[Tier]Ceilings

// DefaultTable returns the shipped tier table.
func DefaultTable() Table {
	return Table{
		Free:    {MaxPrayers: 5, MaxPrayOnIt: 3, MaxVoiceSlots: 1},
		Pro:     {MaxPrayers: 50, MaxPrayOnIt: 25, MaxVoiceSlots: 5},
		Warrior: {MaxPrayers: Unlimited, MaxPrayOnIt: Unlimited, MaxVoiceSlots: Unlimited},
	}
}

// clone returns a defensive copy so a caller-held map cannot mutate a built
// reconciler.
func (t Table) clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
