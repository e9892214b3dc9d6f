package access

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_StaleResultDiscarded(t *testing.T) {
	var s Session

	gen1 := s.Begin()
	// user navigates again before the first fetch lands
	gen2 := s.Begin()

	// the late gen1 result must not be applied to the gen2 navigation
	applied := s.Deliver(gen1, Ready(&Profile{UserID: 7, Status: StatusActive, Role: RoleMember}))
	require.False(t, applied)
	require.Equal(t, ResolutionLoading, s.Current().State)

	applied = s.Deliver(gen2, Ready(&Profile{UserID: 7, Status: StatusPending, Role: RoleMember}))
	require.True(t, applied)
	require.Equal(t, ResolutionReady, s.Current().State)
	require.Equal(t, StatusPending, s.Current().Profile.Status)
}

func TestSession_BeginInvalidatesResolution(t *testing.T) {
	var s Session

	gen := s.Begin()
	require.True(t, s.Deliver(gen, Ready(&Profile{UserID: 1, Status: StatusActive, Role: RoleMember})))
	require.Equal(t, ResolutionReady, s.Current().State)

	// a new navigation resets to loading: no memoized gate decision may
	// survive a profile re-resolution
	s.Begin()
	require.Equal(t, ResolutionLoading, s.Current().State)

	d := EvaluateStatus(true, s.Current(), "/dashboard")
	require.Equal(t, DecisionWait, d.Kind)
}
