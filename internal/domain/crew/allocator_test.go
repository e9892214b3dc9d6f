package crew

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// memStore is the in-memory Store used by allocator tests.
type memStore struct {
	mu      sync.Mutex
	nextID  uint
	members map[uint]*Member

	institutionNumbers map[uint]*string
	seq                map[uint]int
}

func newMemStore() *memStore {
	return &memStore{
		members:            make(map[uint]*Member),
		institutionNumbers: make(map[uint]*string),
		seq:                make(map[uint]int),
	}
}

func (s *memStore) activate(institutionID uint, number string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.institutionNumbers[institutionID] = &number
}

func (s *memStore) CountMembers(institutionID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.members {
		if m.InstitutionID == institutionID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CreateMember(m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	cp := *m
	s.members[m.ID] = &cp
	return nil
}

func (s *memStore) GetMember(id uint) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *memStore) UpdateMember(m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; !ok {
		return ErrMemberNotFound
	}
	cp := *m
	s.members[m.ID] = &cp
	return nil
}

func (s *memStore) DeleteMember(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
	return nil
}

func (s *memStore) ListMembers(institutionID uint) ([]Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Member
	for _, m := range s.members {
		if m.InstitutionID == institutionID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memStore) InstitutionNumber(institutionID uint) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.institutionNumbers[institutionID], nil
}

func (s *memStore) NextAssignedSequence(institutionID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[institutionID]++
	return s.seq[institutionID], nil
}

const testInstitution uint = 42

func TestAllocator_CapNeverExceededUnderConcurrency(t *testing.T) {
	store := newMemStore()
	store.activate(testInstitution, "3120260001")
	alloc := NewAllocator(store)

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := alloc.Add(testInstitution, "Crew", "0812", RoleEditor)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	created, exhausted := 0, 0
	for err := range results {
		switch err {
		case nil:
			created++
		case ErrSlotExhausted:
			exhausted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 3, created)
	require.Equal(t, 17, exhausted)

	count, err := store.CountMembers(testInstitution)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestAllocator_SlotExhaustedBeforeCreation(t *testing.T) {
	store := newMemStore()
	alloc := NewAllocator(store)

	for i := 0; i < 3; i++ {
		_, err := alloc.Add(testInstitution, "Crew", "0812", RoleWriter)
		require.NoError(t, err)
	}

	_, err := alloc.Add(testInstitution, "Fourth", "0812", RoleWriter)
	require.ErrorIs(t, err, ErrSlotExhausted)

	count, _ := store.CountMembers(testInstitution)
	require.Equal(t, 3, count)
}

func TestAllocator_TwoPhaseAdd_InstitutionNotActivated(t *testing.T) {
	store := newMemStore()
	alloc := NewAllocator(store)

	res, err := alloc.Add(testInstitution, "Ahmad", "0812", RoleCoordinator)
	require.NoError(t, err)

	// the member exists and is valid; only the number is absent
	require.NotNil(t, res.Member)
	require.Nil(t, res.Member.AssignedNumber)
	require.ErrorIs(t, res.Issuance.Err, ErrInstitutionNotActivated)

	stored, err := store.GetMember(res.Member.ID)
	require.NoError(t, err)
	require.Nil(t, stored.AssignedNumber)
}

func TestAllocator_IssuanceIdempotent(t *testing.T) {
	store := newMemStore()
	store.activate(testInstitution, "3120260001")
	alloc := NewAllocator(store)

	res, err := alloc.Add(testInstitution, "Ahmad", "0812", RoleEditor)
	require.NoError(t, err)
	require.NoError(t, res.Issuance.Err)
	first := res.Issuance.Number
	require.True(t, strings.HasPrefix(first, "3120260001"+string(RoleEditor)))

	second, err := alloc.IssueAssignedNumber(res.Member.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	third, err := alloc.IssueAssignedNumber(res.Member.ID)
	require.NoError(t, err)
	require.Equal(t, first, third)
}

func TestAllocator_LateIssuanceAfterActivation(t *testing.T) {
	store := newMemStore()
	alloc := NewAllocator(store)

	res, err := alloc.Add(testInstitution, "Ahmad", "0812", RoleDesigner)
	require.NoError(t, err)
	require.ErrorIs(t, res.Issuance.Err, ErrInstitutionNotActivated)

	store.activate(testInstitution, "3120260007")

	number, err := alloc.IssueAssignedNumber(res.Member.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(number, "3120260007"+string(RoleDesigner)))
}

func TestAllocator_ChangeRoleReissuesInBackground(t *testing.T) {
	store := newMemStore()
	store.activate(testInstitution, "3120260001")
	alloc := NewAllocator(store)

	res, err := alloc.Add(testInstitution, "Ahmad", "0812", RoleEditor)
	require.NoError(t, err)
	require.NoError(t, res.Issuance.Err)
	old := res.Issuance.Number

	member, err := alloc.ChangeRole(res.Member.ID, RoleCoordinator)
	require.NoError(t, err)
	require.Equal(t, RoleCoordinator, member.RoleCode)

	// re-issuance runs in the background; the new number must embed the
	// new role code and differ from the old one
	require.Eventually(t, func() bool {
		m, err := store.GetMember(res.Member.ID)
		if err != nil || m.AssignedNumber == nil {
			return false
		}
		return *m.AssignedNumber != old &&
			strings.HasPrefix(*m.AssignedNumber, "3120260001"+string(RoleCoordinator))
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAllocator_ChangeRoleWithoutNumberStaysUnissued(t *testing.T) {
	store := newMemStore()
	alloc := NewAllocator(store)

	res, err := alloc.Add(testInstitution, "Ahmad", "0812", RoleEditor)
	require.NoError(t, err)
	require.ErrorIs(t, res.Issuance.Err, ErrInstitutionNotActivated)

	member, err := alloc.ChangeRole(res.Member.ID, RoleWriter)
	require.NoError(t, err)
	require.Equal(t, RoleWriter, member.RoleCode)

	// no number existed, so no background issuance fires
	time.Sleep(50 * time.Millisecond)
	m, _ := store.GetMember(res.Member.ID)
	require.Nil(t, m.AssignedNumber)
}

func TestAllocator_RejectsUnknownRoleCode(t *testing.T) {
	alloc := NewAllocator(newMemStore())
	_, err := alloc.Add(testInstitution, "Ahmad", "0812", RoleCode("99"))
	require.ErrorIs(t, err, ErrInvalidRoleCode)
}

func TestAllocator_RemoveFreesSlot(t *testing.T) {
	store := newMemStore()
	alloc := NewAllocator(store)

	var last AddResult
	for i := 0; i < 3; i++ {
		res, err := alloc.Add(testInstitution, "Crew", "0812", RoleEditor)
		require.NoError(t, err)
		last = res
	}
	_, err := alloc.Add(testInstitution, "Fourth", "0812", RoleEditor)
	require.ErrorIs(t, err, ErrSlotExhausted)

	require.NoError(t, alloc.Remove(last.Member.ID))

	_, err = alloc.Add(testInstitution, "Fourth", "0812", RoleEditor)
	require.NoError(t, err)
}
