package crew

import "time"

// RoleCode classifies a crew member. The two-digit code participates in
// assigned-number composition, which is why a role change re-triggers
// issuance.
type RoleCode string

const (
	RoleCoordinator  RoleCode = "10"
	RoleEditor       RoleCode = "20"
	RoleDesigner     RoleCode = "30"
	RolePhotographer RoleCode = "40"
	RoleWriter       RoleCode = "50"
)

func (r RoleCode) Valid() bool {
	switch r {
	case RoleCoordinator, RoleEditor, RoleDesigner, RolePhotographer, RoleWriter:
		return true
	}
	return false
}

// Member is one roster entry of an institution. AssignedNumber (NIAM)
// is issued by a dependent process and legitimately stays nil while the
// owning institution's own number is not yet active; that is not an
// error state of the member itself.
type Member struct {
	ID            uint     `gorm:"primaryKey"`
	InstitutionID uint     `gorm:"not null;index:idx_crew_members_institution_id"`
	Name          string   `gorm:"not null"`
	Whatsapp      string
	RoleCode      RoleCode `gorm:"type:varchar(2);not null"`

	AssignedNumber *string `gorm:"uniqueIndex:idx_crew_members_assigned_number"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Member) TableName() string { return "crew_members" }
