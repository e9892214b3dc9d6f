package crew

import (
	"errors"

	"gorm.io/gorm"

	"membership-app/internal/domain/institutions"
)

var ErrMemberNotFound = errors.New("crew member not found")

// Store is the narrow persistence surface the allocator needs. The
// production implementation wraps gorm; tests use an in-memory fake.
type Store interface {
	CountMembers(institutionID uint) (int, error)
	CreateMember(m *Member) error
	GetMember(id uint) (*Member, error)
	UpdateMember(m *Member) error
	DeleteMember(id uint) error
	ListMembers(institutionID uint) ([]Member, error)

	// InstitutionNumber returns the owning institution's activated
	// member number, or nil when not yet issued.
	InstitutionNumber(institutionID uint) (*string, error)
	// NextAssignedSequence returns the next free per-institution
	// sequence. Sequences are never reused, so a re-issued number can
	// not collide with a number still held by another member.
	NextAssignedSequence(institutionID uint) (int, error)
}

// GormStore is the Postgres-backed Store.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) CountMembers(institutionID uint) (int, error) {
	var n int64
	err := s.DB.Model(&Member{}).Where("institution_id = ?", institutionID).Count(&n).Error
	return int(n), err
}

func (s *GormStore) CreateMember(m *Member) error {
	return s.DB.Create(m).Error
}

func (s *GormStore) GetMember(id uint) (*Member, error) {
	var m Member
	err := s.DB.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) UpdateMember(m *Member) error {
	return s.DB.Save(m).Error
}

func (s *GormStore) DeleteMember(id uint) error {
	return s.DB.Delete(&Member{}, id).Error
}

func (s *GormStore) ListMembers(institutionID uint) ([]Member, error) {
	var out []Member
	err := s.DB.Where("institution_id = ?", institutionID).Order("id").Find(&out).Error
	return out, err
}

func (s *GormStore) InstitutionNumber(institutionID uint) (*string, error) {
	var inst institutions.Institution
	if err := s.DB.Select("id", "member_number").First(&inst, institutionID).Error; err != nil {
		return nil, err
	}
	return inst.MemberNumber, nil
}

func (s *GormStore) NextAssignedSequence(institutionID uint) (int, error) {
	var numbers []string
	err := s.DB.Model(&Member{}).
		Where("institution_id = ? AND assigned_number IS NOT NULL", institutionID).
		Pluck("assigned_number", &numbers).Error
	if err != nil {
		return 0, err
	}
	return nextSequence(numbers), nil
}

// nextSequence returns one past the highest two-digit suffix among the
// issued numbers.
func nextSequence(numbers []string) int {
	max := 0
	for _, n := range numbers {
		if len(n) < 2 {
			continue
		}
		seq := 0
		for _, c := range n[len(n)-2:] {
			if c < '0' || c > '9' {
				seq = -1
				break
			}
			seq = seq*10 + int(c-'0')
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1
}
