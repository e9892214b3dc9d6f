package access

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func activeProfile(role Role) Resolution {
	return Ready(&Profile{UserID: 1, Role: role, Status: StatusActive})
}

func statusProfile(status AccountStatus) Resolution {
	return Ready(&Profile{UserID: 1, Role: RoleMember, Status: status})
}

func TestStatusGate_UnauthenticatedAlwaysLogin(t *testing.T) {
	// Rule 1 is terminal: no status or path may override it.
	paths := []string{"/dashboard", PathPending, PathRejected, PathForbidden, "/media-dashboard/crew"}
	for _, path := range paths {
		d := EvaluateStatus(false, statusProfile(StatusPending), path)
		require.Equal(t, DecisionRedirect, d.Kind, "path %s", path)
		require.Equal(t, PathLogin, d.Target, "path %s", path)
	}
}

func TestStatusGate_MissingProfileRedirectsLogin(t *testing.T) {
	d := EvaluateStatus(true, Missing(), "/dashboard")
	require.Equal(t, DecisionRedirect, d.Kind)
	require.Equal(t, PathLogin, d.Target)
}

func TestStatusGate_LoadingWaits(t *testing.T) {
	// While the profile fetch is in flight the gate must not pick a
	// side.
	d := EvaluateStatus(true, Loading(), "/dashboard")
	require.Equal(t, DecisionWait, d.Kind)
}

func TestStatusGate_PendingAndRejectedSymmetry(t *testing.T) {
	tests := []struct {
		name     string
		status   AccountStatus
		path     string
		wantKind DecisionKind
		wantTo   string
	}{
		{"pending elsewhere", StatusPending, "/dashboard", DecisionRedirect, PathPending},
		{"pending on own page", StatusPending, PathPending, DecisionAllow, ""},
		{"pending on rejected page", StatusPending, PathRejected, DecisionRedirect, PathPending},
		{"rejected elsewhere", StatusRejected, "/media-dashboard", DecisionRedirect, PathRejected},
		{"rejected on own page", StatusRejected, PathRejected, DecisionAllow, ""},
		{"rejected on pending page", StatusRejected, PathPending, DecisionRedirect, PathRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateStatus(true, statusProfile(tt.status), tt.path)
			require.Equal(t, tt.wantKind, d.Kind)
			require.Equal(t, tt.wantTo, d.Target)
		})
	}
}

func TestStatusGate_ActivePassesThrough(t *testing.T) {
	d := EvaluateStatus(true, statusProfile(StatusActive), "/dashboard")
	require.Equal(t, DecisionAllow, d.Kind)
}

func TestRoleGate_ForbiddenPageAlwaysAllowed(t *testing.T) {
	for _, role := range []Role{RoleCentralAdmin, RoleRegionalAdmin, RoleFinanceAdmin, RoleMember} {
		d := EvaluateRole(role, PathForbidden, []Role{RoleCentralAdmin})
		require.Equal(t, DecisionAllow, d.Kind, "role %s", role)
	}
}

func TestRoleGate_EmptySetAllows(t *testing.T) {
	d := EvaluateRole(RoleMember, "/some-open-page", nil)
	require.Equal(t, DecisionAllow, d.Kind)
}

func TestRoleGate_MismatchRedirectsForbidden(t *testing.T) {
	d := EvaluateRole(RoleMember, "/dashboard", []Role{RoleCentralAdmin})
	require.Equal(t, DecisionRedirect, d.Kind)
	// Uniform target: never "the dashboard for this role".
	require.Equal(t, PathForbidden, d.Target)
}

func TestRoleGate_UnknownRoleNeverAllowed(t *testing.T) {
	d := EvaluateRole(Role("superuser"), "/dashboard", []Role{RoleCentralAdmin})
	require.Equal(t, DecisionRedirect, d.Kind)
	require.Equal(t, PathForbidden, d.Target)
}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		authed   bool
		res      Resolution
		path     string
		wantKind DecisionKind
		wantTo   string
	}{
		{"pending requesting dashboard", true, statusProfile(StatusPending), "/dashboard", DecisionRedirect, PathPending},
		{"member requesting central dashboard", true, activeProfile(RoleMember), "/dashboard", DecisionRedirect, PathForbidden},
		{"member on own dashboard", true, activeProfile(RoleMember), "/media-dashboard", DecisionAllow, ""},
		{"central admin on finance", true, activeProfile(RoleCentralAdmin), "/finance/payments", DecisionAllow, ""},
		{"regional admin on central area", true, activeProfile(RoleRegionalAdmin), "/admin/regional/4", DecisionRedirect, PathForbidden},
		{"active on forbidden page", true, activeProfile(RoleMember), PathForbidden, DecisionAllow, ""},
		{"unauthenticated anywhere", false, Loading(), "/regional-dashboard", DecisionRedirect, PathLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.authed, tt.res, tt.path, DefaultRoutes)
			require.Equal(t, tt.wantKind, d.Kind)
			require.Equal(t, tt.wantTo, d.Target)
		})
	}
}

func TestRouteTable_LongestPrefixWins(t *testing.T) {
	table := RouteTable{
		{Prefix: "/admin", Roles: []Role{RoleCentralAdmin}},
		{Prefix: "/admin/open", Roles: nil},
	}
	require.Nil(t, table.AllowedRoles("/admin/open/page"))
	require.Equal(t, []Role{RoleCentralAdmin}, table.AllowedRoles("/admin/users"))
	require.Nil(t, table.AllowedRoles("/elsewhere"))
}
