package tier

// Counts carries the current number of locally known resources per kind.
type Counts struct {
	Prayers  int
	PrayOnIt int
}

// EnforcementState is the derived over/under-limit status for one evaluation.
// It is recomputed on demand and never persisted.
type EnforcementState struct {
	WithinLimits bool
	Overage      map[ResourceKind]int
}

// Reconciler defines a public type used by prayerkit APIs.
//
// Reconciler instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Reconciler struct {
	table Table
}

// NewReconciler builds a reconciler over the given table. A nil table falls
// back to [DefaultTable].
func NewReconciler(table Table) *Reconciler {
	if table == nil {
		table = DefaultTable()
	}
	return &Reconciler{table: table.clone()}
}

// Evaluate derives the enforcement state for the given tier and counts.
//
// Evaluate is pure and total: an unknown tier resolves to the Free row, a
// missing row means every ceiling is unlimited, and for each resource kind
// overage = max(0, count-ceiling). WithinLimits holds iff every overage is
// zero.
func (r *Reconciler) Evaluate(t Tier, c Counts) EnforcementState {
	ceilings, ok := r.table[t]
	if !ok {
		ceilings, ok = r.table[Free]
		if !ok {
			ceilings = Ceilings{MaxPrayers: Unlimited, MaxPrayOnIt: Unlimited, MaxVoiceSlots: Unlimited}
		}
	}

	state := EnforcementState{
		WithinLimits: true,
		Overage: map[ResourceKind]int{
			KindPrayers:  overage(c.Prayers, ceilings.MaxPrayers),
			KindPrayOnIt: overage(c.PrayOnIt, ceilings.MaxPrayOnIt),
		},
	}
	for _, over := range state.Overage {
		if over > 0 {
			state.WithinLimits = false
		}
	}
	return state
}

// Ceilings exposes the resolved row for a tier, falling back the same way
// Evaluate does. Callers use it to render "N of M used" style summaries.
func (r *Reconciler) Ceilings(t Tier) Ceilings {
	if c, ok := r.table[t]; ok {
		return c
	}
	if c, ok := r.table[Free]; ok {
		return c
	}
	return Ceilings{MaxPrayers: Unlimited, MaxPrayOnIt: Unlimited, MaxVoiceSlots: Unlimited}
}

func overage(count, ceiling int) int {
	if ceiling == Unlimited {
		return 0
	}
	if over := count - ceiling; over > 0 {
		return over
	}
	return 0
}
