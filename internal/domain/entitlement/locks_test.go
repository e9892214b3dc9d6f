package entitlement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate_IDCardIgnoresPayment(t *testing.T) {
	// unpaid gold: card unlocked anyway
	lock := Evaluate(FeatureIDCard, State{Payment: PaymentUnpaid, Level: LevelGold})
	require.False(t, lock.Locked)

	// paid silver: still locked, level is the only criterion
	lock = Evaluate(FeatureIDCard, State{Payment: PaymentPaid, Level: LevelSilver})
	require.True(t, lock.Locked)
	require.Equal(t, ReasonLevelTooLow, lock.Reason)

	lock = Evaluate(FeatureIDCard, State{Payment: PaymentUnpaid, Level: LevelPlatinum})
	require.False(t, lock.Locked)
}

func TestEvaluate_CrewMutatePolicy(t *testing.T) {
	tests := []struct {
		name       string
		st         State
		wantLocked bool
		wantReason LockReason
	}{
		{"unpaid basic", State{Payment: PaymentUnpaid, Level: LevelBasic}, true, ReasonUnpaid},
		{"unpaid platinum", State{Payment: PaymentUnpaid, Level: LevelPlatinum}, true, ReasonUnpaid},
		{"paid with room", State{Payment: PaymentPaid, Level: LevelBasic, CrewSlotCount: 2}, false, ReasonNone},
		// paid gold at capacity: the reason must be slot exhaustion,
		// never unpaid
		{"paid gold at cap", State{Payment: PaymentPaid, Level: LevelGold, CrewSlotCount: 3}, true, ReasonSlotExhausted},
		{"paid over cap", State{Payment: PaymentPaid, Level: LevelGold, CrewSlotCount: 4}, true, ReasonSlotExhausted},
		// unpaid at capacity: payment lock wins the ordering
		{"unpaid at cap", State{Payment: PaymentUnpaid, Level: LevelGold, CrewSlotCount: 3}, true, ReasonUnpaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := Evaluate(FeatureCrewMutate, tt.st)
			require.Equal(t, tt.wantLocked, lock.Locked)
			require.Equal(t, tt.wantReason, lock.Reason)
		})
	}
}

func TestSnapshot_CoversAllFeatures(t *testing.T) {
	snap := Snapshot(State{Payment: PaymentPaid, Level: LevelGold, CrewSlotCount: 1})
	require.Contains(t, snap, FeatureIDCard)
	require.Contains(t, snap, FeatureCrewMutate)
	require.False(t, snap[FeatureIDCard].Locked)
	require.False(t, snap[FeatureCrewMutate].Locked)
}

func TestLevelOrdering(t *testing.T) {
	require.True(t, LevelPlatinum.AtLeast(LevelGold))
	require.True(t, LevelGold.AtLeast(LevelGold))
	require.False(t, LevelSilver.AtLeast(LevelGold))
	require.False(t, Level("unknown").AtLeast(LevelBasic))

	require.Equal(t, LevelSilver, LevelBasic.Next())
	require.Equal(t, LevelPlatinum, LevelPlatinum.Next())
}
