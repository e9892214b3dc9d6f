package entitlement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func completeFields() PromotionFields {
	return PromotionFields{
		InstitutionName: "Pondok Media Al-Hikmah",
		SupervisorName:  "H. Ahmad",
		ShortAddress:    "Jl. Raya No. 1",
		Instagram:       "@alhikmah",
		Latitude:        "-7.98",
		Longitude:       "112.63",
		MissionVision:   "Serve the community",
		History:         "Founded 1987",
	}
}

func TestAttemptPromotion_AdjacentOnly(t *testing.T) {
	fields := completeFields()

	// silver -> platinum skips gold
	_, err := AttemptPromotion(LevelSilver, LevelPlatinum, fields)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// basic -> gold skips silver
	_, err = AttemptPromotion(LevelBasic, LevelGold, fields)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// unknown target
	_, err = AttemptPromotion(LevelBasic, Level("diamond"), fields)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAttemptPromotion_NeverDowngrades(t *testing.T) {
	fields := completeFields()

	for _, current := range []Level{LevelSilver, LevelGold, LevelPlatinum} {
		for _, target := range []Level{LevelBasic, LevelSilver, LevelGold, LevelPlatinum} {
			if target.Rank() > current.Rank() {
				continue
			}
			got, err := AttemptPromotion(current, target, fields)
			require.ErrorIs(t, err, ErrAlreadyAtOrAboveTarget, "%s -> %s", current, target)
			require.Equal(t, current, got, "level must stand untouched")
		}
	}
}

func TestAttemptPromotion_CumulativeRequirements(t *testing.T) {
	tests := []struct {
		name        string
		current     Level
		target      Level
		mutate      func(*PromotionFields)
		wantMissing []string
	}{
		{
			"silver needs base identity",
			LevelBasic, LevelSilver,
			func(f *PromotionFields) { f.InstitutionName = ""; f.ShortAddress = " " },
			[]string{"institution_name", "short_address"},
		},
		{
			"gold needs a social link",
			LevelSilver, LevelGold,
			func(f *PromotionFields) { f.Instagram = ""; f.Youtube = ""; f.Tiktok = ""; f.Website = "" },
			[]string{"social_link"},
		},
		{
			"gold needs both coordinates",
			LevelSilver, LevelGold,
			func(f *PromotionFields) { f.Latitude = ""; f.Longitude = "" },
			[]string{"latitude", "longitude"},
		},
		{
			"gold still checks silver fields",
			LevelSilver, LevelGold,
			func(f *PromotionFields) { f.SupervisorName = "" },
			[]string{"supervisor_name"},
		},
		{
			"platinum needs statements",
			LevelGold, LevelPlatinum,
			func(f *PromotionFields) { f.MissionVision = ""; f.History = "" },
			[]string{"mission_vision", "history"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := completeFields()
			tt.mutate(&fields)

			got, err := AttemptPromotion(tt.current, tt.target, fields)
			require.Equal(t, tt.current, got)

			var missing *MissingFieldsError
			require.ErrorAs(t, err, &missing)
			require.Equal(t, tt.wantMissing, missing.Fields)
		})
	}
}

func TestAttemptPromotion_AllOrNothing(t *testing.T) {
	fields := completeFields()
	fields.Longitude = ""

	got, err := AttemptPromotion(LevelSilver, LevelGold, fields)
	require.Error(t, err)
	require.Equal(t, LevelSilver, got)
}

func TestAttemptPromotion_RegionImmutable(t *testing.T) {
	fields := completeFields()
	fields.Region = "Malang Raya"

	_, err := AttemptPromotion(LevelBasic, LevelSilver, fields)
	require.ErrorIs(t, err, ErrRegionImmutable)

	fields = completeFields()
	fields.City = "Kota Malang"
	_, err = AttemptPromotion(LevelBasic, LevelSilver, fields)
	require.ErrorIs(t, err, ErrRegionImmutable)
}

func TestAttemptPromotion_FullLadder(t *testing.T) {
	fields := completeFields()
	level := LevelBasic

	for _, want := range []Level{LevelSilver, LevelGold, LevelPlatinum} {
		got, err := AttemptPromotion(level, want, fields)
		require.NoError(t, err)
		require.Equal(t, want, got)
		level = got
	}

	// idempotence at the top: re-claiming platinum is rejected, not
	// re-applied
	_, err := AttemptPromotion(level, LevelPlatinum, fields)
	require.ErrorIs(t, err, ErrAlreadyAtOrAboveTarget)
}
