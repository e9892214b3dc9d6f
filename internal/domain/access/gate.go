package access

// DecisionKind classifies a gate outcome. Gates never throw; they return
// one of these values and the HTTP (or UI) adapter translates it.
type DecisionKind int

const (
	// DecisionWait means the inputs are still being resolved. The gate
	// must not default to allow or deny while a profile fetch is in
	// flight; racing a stale "not yet loaded" state into a redirect is a
	// known failure mode.
	DecisionWait DecisionKind = iota
	DecisionAllow
	DecisionRedirect
)

type Decision struct {
	Kind   DecisionKind
	Target string // redirect target, set only for DecisionRedirect
}

func Allow() Decision { return Decision{Kind: DecisionAllow} }
func Wait() Decision  { return Decision{Kind: DecisionWait} }
func RedirectTo(path string) Decision {
	return Decision{Kind: DecisionRedirect, Target: path}
}

// ResolutionState tracks the async boundary around the profile fetch.
type ResolutionState int

const (
	ResolutionLoading ResolutionState = iota
	ResolutionReady
	ResolutionMissing
)

// Resolution is the (possibly in-flight) result of resolving an access
// profile. Missing means authenticated-but-no-profile.
type Resolution struct {
	State   ResolutionState
	Profile *Profile
}

func Loading() Resolution { return Resolution{State: ResolutionLoading} }
func Missing() Resolution { return Resolution{State: ResolutionMissing} }
func Ready(p *Profile) Resolution {
	if p == nil {
		return Missing()
	}
	return Resolution{State: ResolutionReady, Profile: p}
}

// EvaluateStatus is Layer 1, the status gate. Rules are a strict total
// order; each is terminal. Later rules assume earlier ones are false, so
// none may be skipped or reordered.
func EvaluateStatus(authenticated bool, res Resolution, path string) Decision {
	if !authenticated {
		return RedirectTo(PathLogin)
	}
	if res.State == ResolutionLoading {
		return Wait()
	}
	if res.State == ResolutionMissing || res.Profile == nil {
		return RedirectTo(PathLogin)
	}

	switch res.Profile.Status {
	case StatusPending:
		if path == PathPending {
			return Allow()
		}
		return RedirectTo(PathPending)
	case StatusRejected:
		if path == PathRejected {
			return Allow()
		}
		return RedirectTo(PathRejected)
	}

	// account_status == active: Layer 1 passes, Layer 2 decides.
	return Allow()
}

// EvaluateRole is Layer 2, the role gate. It runs only once Layer 1 has
// passed for an active identity. On mismatch it redirects uniformly to
// the forbidden page; it never infers "the dashboard for this role".
// The forbidden page itself is terminal: always allowed, never a
// redirect source, so the two layers cannot bounce between each other.
func EvaluateRole(role Role, path string, allowed []Role) Decision {
	if path == PathForbidden {
		return Allow()
	}
	if len(allowed) == 0 {
		return Allow()
	}
	if !role.Valid() {
		return RedirectTo(PathForbidden)
	}
	for _, a := range allowed {
		if role == a {
			return Allow()
		}
	}
	return RedirectTo(PathForbidden)
}

// Evaluate runs both layers in order against an already-resolved input
// set. Layer 2 is only consulted when Layer 1 allowed.
func Evaluate(authenticated bool, res Resolution, path string, table RouteTable) Decision {
	d := EvaluateStatus(authenticated, res, path)
	if d.Kind != DecisionAllow {
		return d
	}
	// Pending/rejected identities got their terminal Allow above and
	// never reach role checks.
	if res.Profile.Status != StatusActive {
		return d
	}
	return EvaluateRole(res.Profile.Role, path, table.AllowedRoles(path))
}
