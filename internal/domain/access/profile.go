package access

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Profile is the minimal security record for one identity. It carries
// ONLY the fields the gates need. Business data (institution name, media
// links, assets) lives elsewhere and must stay fetchable independently,
// so access checks never block on business-data loading.
type Profile struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_access_profiles_user_id"`
	Role      Role `gorm:"type:varchar(20);not null"`
	Status    AccountStatus `gorm:"column:account_status;type:varchar(10);not null;default:'pending'"`
	RegionID  *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string { return "access_profiles" }

// ErrProfileNotFound means the identity authenticated but no access
// profile exists for it. For routing this is treated like an
// unauthenticated request, but callers should log it distinctly: it is a
// backend consistency fault, not a user action.
var ErrProfileNotFound = errors.New("access profile not found")

// ResolveProfile fetches the security record for a user with a narrow
// column selection. It deliberately never preloads or joins business
// tables.
func ResolveProfile(db *gorm.DB, userID uint) (*Profile, error) {
	var p Profile
	err := db.
		Select("id", "user_id", "role", "account_status", "region_id").
		Where("user_id = ?", userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
