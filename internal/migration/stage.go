package migration

// Stage tracks how far a single migration attempt has progressed. The
// pipeline only moves forward; completed stages are never rolled back, and a
// later retry re-enters idempotently through the reconciler's lookup-first
// check.
type Stage int

const (
	// StageLegacy is the starting state: a RAWG-sourced game row that has
	// not been migrated yet.
	StageLegacy Stage = iota

	// StageResolving means the IGDB search is in flight.
	StageResolving

	// StageNoMatch is terminal: no IGDB candidate matched the title. The
	// legacy row stays authoritative.
	StageNoMatch

	// StageResolved means an IGDB candidate was accepted.
	StageResolved

	// StageReconciled means the canonical IGDB game row exists locally.
	StageReconciled

	// StageOwnershipMigrated means library entries have been re-pointed.
	StageOwnershipMigrated

	// StageTagged is the final state: genres and platforms merged.
	StageTagged
)

func (s Stage) String() string {
	switch s {
	case StageLegacy:
		return "legacy"
	case StageResolving:
		return "resolving"
	case StageNoMatch:
		return "no_match"
	case StageResolved:
		return "resolved"
	case StageReconciled:
		return "reconciled"
	case StageOwnershipMigrated:
		return "ownership_migrated"
	case StageTagged:
		return "tagged"
	}
	return "unknown"
}
