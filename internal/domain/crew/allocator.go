package crew

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"membership-app/internal/domain/entitlement"
)

var (
	// ErrSlotExhausted: the institution's free roster capacity is used
	// up. Distinct from payment locks; a paid institution at capacity
	// still gets this reason.
	ErrSlotExhausted = errors.New("crew slot quota exhausted")

	// ErrInstitutionNotActivated: assigned-number issuance requires the
	// owning institution to hold an active member number of its own.
	ErrInstitutionNotActivated = errors.New("institution member number not yet active")

	ErrInvalidRoleCode = errors.New("unknown crew role code")
)

// Issuance is the secondary half of a two-phase add. The member record
// is valid regardless of what is in here.
type Issuance struct {
	Number string
	Err    error
}

// AddResult reports a two-phase add: creation succeeded (or the whole
// call errored), issuance carried its own independent outcome.
type AddResult struct {
	Member   *Member
	Issuance Issuance
}

// Allocator enforces the roster slot quota and drives assigned-number
// issuance. The slot check and the insert are serialized per
// institution so two concurrent adds cannot both observe count < cap
// and both succeed.
type Allocator struct {
	store Store

	mu     sync.Mutex
	byInst map[uint]*sync.Mutex
}

func NewAllocator(store Store) *Allocator {
	return &Allocator{store: store, byInst: make(map[uint]*sync.Mutex)}
}

func (a *Allocator) lockFor(institutionID uint) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.byInst[institutionID]
	if !ok {
		m = &sync.Mutex{}
		a.byInst[institutionID] = m
	}
	return m
}

// Add creates a roster member and then attempts number issuance as a
// separable second step. Slot exhaustion is checked before any record
// is created. An issuance failure does not invalidate the created
// member; it is surfaced in the result for the caller to report as a
// warning.
func (a *Allocator) Add(institutionID uint, name, whatsapp string, role RoleCode) (AddResult, error) {
	if !role.Valid() {
		return AddResult{}, ErrInvalidRoleCode
	}

	lock := a.lockFor(institutionID)
	lock.Lock()
	defer lock.Unlock()

	count, err := a.store.CountMembers(institutionID)
	if err != nil {
		return AddResult{}, err
	}
	if count >= entitlement.FreeCrewSlots {
		return AddResult{}, ErrSlotExhausted
	}

	m := &Member{
		InstitutionID: institutionID,
		Name:          name,
		Whatsapp:      whatsapp,
		RoleCode:      role,
	}
	if err := a.store.CreateMember(m); err != nil {
		return AddResult{}, err
	}

	number, issueErr := a.issueLocked(m)
	return AddResult{Member: m, Issuance: Issuance{Number: number, Err: issueErr}}, nil
}

// IssueAssignedNumber issues (or re-reads) a member's NIAM. Idempotent:
// a member that already holds a number gets the same number back, never
// a new one and never an error.
func (a *Allocator) IssueAssignedNumber(memberID uint) (string, error) {
	m, err := a.store.GetMember(memberID)
	if err != nil {
		return "", err
	}

	lock := a.lockFor(m.InstitutionID)
	lock.Lock()
	defer lock.Unlock()

	// re-read under the lock
	m, err = a.store.GetMember(memberID)
	if err != nil {
		return "", err
	}
	return a.issueLocked(m)
}

// issueLocked composes the assigned number from the institution's own
// number, the member's role code and a per-institution sequence. Caller
// holds the institution lock.
func (a *Allocator) issueLocked(m *Member) (string, error) {
	if m.AssignedNumber != nil && *m.AssignedNumber != "" {
		return *m.AssignedNumber, nil
	}

	instNumber, err := a.store.InstitutionNumber(m.InstitutionID)
	if err != nil {
		return "", err
	}
	if instNumber == nil || *instNumber == "" {
		return "", ErrInstitutionNotActivated
	}

	seq, err := a.store.NextAssignedSequence(m.InstitutionID)
	if err != nil {
		return "", err
	}

	number := fmt.Sprintf("%s%s%02d", *instNumber, m.RoleCode, seq)
	m.AssignedNumber = &number
	if err := a.store.UpdateMember(m); err != nil {
		m.AssignedNumber = nil
		return "", err
	}
	return number, nil
}

// ChangeRole updates a member's role classification and re-triggers
// number issuance in the background: numbers derive partly from the
// role code, but recomputation must not block the role change itself.
func (a *Allocator) ChangeRole(memberID uint, role RoleCode) (*Member, error) {
	if !role.Valid() {
		return nil, ErrInvalidRoleCode
	}

	m, err := a.store.GetMember(memberID)
	if err != nil {
		return nil, err
	}

	lock := a.lockFor(m.InstitutionID)
	lock.Lock()
	m.RoleCode = role
	had := m.AssignedNumber != nil && *m.AssignedNumber != ""
	if had {
		// drop the stale number so issuance recomputes it
		m.AssignedNumber = nil
	}
	err = a.store.UpdateMember(m)
	lock.Unlock()
	if err != nil {
		return nil, err
	}

	if had {
		go func(id uint) {
			if _, err := a.IssueAssignedNumber(id); err != nil {
				log.Printf("crew: background number re-issuance for member %d failed: %v", id, err)
			}
		}(m.ID)
	}
	return m, nil
}

// Remove frees a roster slot.
func (a *Allocator) Remove(memberID uint) error {
	m, err := a.store.GetMember(memberID)
	if err != nil {
		return err
	}
	lock := a.lockFor(m.InstitutionID)
	lock.Lock()
	defer lock.Unlock()
	return a.store.DeleteMember(m.ID)
}
