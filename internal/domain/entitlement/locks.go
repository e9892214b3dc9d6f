package entitlement

// PaymentStatus of an institution's one-time activation payment.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// FreeCrewSlots is the roster capacity included with membership. A paid
// slot-purchase path is planned but not implemented; the distinct
// ReasonSlotExhausted code exists now so it can be added later without
// changing this contract.
const FreeCrewSlots = 3

// Feature names a product surface the lock engine knows about.
type Feature string

const (
	FeatureIDCard     Feature = "id_card"
	FeatureCrewMutate Feature = "crew_mutate"
)

// LockReason tells the caller which remediation applies. Callers must
// not collapse these into a generic "locked" signal.
type LockReason string

const (
	ReasonNone          LockReason = ""
	ReasonUnpaid        LockReason = "unpaid"
	ReasonSlotExhausted LockReason = "slot_exhausted"
	ReasonLevelTooLow   LockReason = "level_too_low"
)

// Lock is a single feature-lock verdict.
type Lock struct {
	Locked bool
	Reason LockReason
}

var unlocked = Lock{}

// State is the entitlement-relevant snapshot of one institution,
// resolved before evaluation. Evaluate itself performs no I/O.
type State struct {
	Payment       PaymentStatus
	Level         Level
	CrewSlotCount int
}

// Evaluate applies the feature policy table. Pure, safe to call on
// every request.
//
//   - The digital ID card unlocks at gold, independent of payment.
//   - Crew mutation is locked while unpaid, regardless of level.
//   - Crew mutation is additionally locked at the slot cap; a paid gold
//     institution at capacity gets ReasonSlotExhausted, never
//     ReasonUnpaid.
func Evaluate(feature Feature, st State) Lock {
	switch feature {
	case FeatureIDCard:
		if !st.Level.AtLeast(LevelGold) {
			return Lock{Locked: true, Reason: ReasonLevelTooLow}
		}
		return unlocked

	case FeatureCrewMutate:
		if st.Payment != PaymentPaid {
			return Lock{Locked: true, Reason: ReasonUnpaid}
		}
		if st.CrewSlotCount >= FreeCrewSlots {
			return Lock{Locked: true, Reason: ReasonSlotExhausted}
		}
		return unlocked
	}
	return unlocked
}

// Snapshot evaluates every known feature for one state, for composite
// responses such as /me.
func Snapshot(st State) map[Feature]Lock {
	return map[Feature]Lock{
		FeatureIDCard:     Evaluate(FeatureIDCard, st),
		FeatureCrewMutate: Evaluate(FeatureCrewMutate, st),
	}
}
