package access

// Role is the closed set of application roles. Exactly one role per
// identity at any time.
type Role string

const (
	RoleCentralAdmin  Role = "central_admin"
	RoleRegionalAdmin Role = "regional_admin"
	RoleFinanceAdmin  Role = "finance_admin"
	RoleMember        Role = "member"
)

// Valid reports whether r is one of the known roles. The switch is
// exhaustive on purpose: adding a role without updating the gates should
// fail loudly in review, not silently default.
func (r Role) Valid() bool {
	switch r {
	case RoleCentralAdmin, RoleRegionalAdmin, RoleFinanceAdmin, RoleMember:
		return true
	}
	return false
}

// AccountStatus is the account lifecycle state. Created as pending at
// registration, moved to active or rejected exactly once by a regional
// admin decision. There is no automatic reversion.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusActive   AccountStatus = "active"
	StatusRejected AccountStatus = "rejected"
)

// Well-known paths the gates special-case.
const (
	PathLogin     = "/login"
	PathPending   = "/pending"
	PathRejected  = "/rejected"
	PathForbidden = "/403"
)
