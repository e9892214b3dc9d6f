package access

import "strings"

// RouteRule binds a path prefix to the roles allowed under it. An empty
// role set means any active identity.
type RouteRule struct {
	Prefix string
	Roles  []Role
}

type RouteTable []RouteRule

// AllowedRoles returns the role set of the longest matching prefix, or
// nil when no rule matches (route declares no restriction).
func (t RouteTable) AllowedRoles(path string) []Role {
	var best *RouteRule
	for i := range t {
		r := &t[i]
		if !strings.HasPrefix(path, r.Prefix) {
			continue
		}
		if best == nil || len(r.Prefix) > len(best.Prefix) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	return best.Roles
}

// DefaultRoutes is the application route table. Login, pending, rejected
// and the forbidden page are special-cased by the gates themselves and
// carry no entry here.
var DefaultRoutes = RouteTable{
	{Prefix: "/dashboard", Roles: []Role{RoleCentralAdmin}},
	{Prefix: "/finance", Roles: []Role{RoleCentralAdmin}},
	{Prefix: "/majelis-militan", Roles: []Role{RoleCentralAdmin}},
	{Prefix: "/admin/regional/", Roles: []Role{RoleCentralAdmin}},
	{Prefix: "/regional-dashboard", Roles: []Role{RoleRegionalAdmin}},
	{Prefix: "/media-dashboard", Roles: []Role{RoleMember}},
	{Prefix: "/crew-dashboard", Roles: []Role{RoleMember}},
}
