// Package tier maps subscription tiers to resource ceilings and derives
// enforcement state from the current local resource counts.
//
// Evaluate is a pure, total function: it never errors, treats a missing or
// unlimited ceiling as "no overage", and is monotonic in counts. Enforcer
// layers the consumer contract on top: once enforcement begins, the only way
// out is convergence to within-limits, at which point the resolved callback
// fires exactly once.
package tier
