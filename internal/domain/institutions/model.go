package institutions

import (
	"time"

	"membership-app/internal/domain/entitlement"
)

// Institution is the business profile of a member institution. Access
// control never reads this table; the gates work off access_profiles
// alone.
type Institution struct {
	ID          uint `gorm:"primaryKey"`
	OwnerUserID uint `gorm:"not null;uniqueIndex:idx_institutions_owner_user_id"`
	RegionID    uint `gorm:"not null"`

	Name           string
	SupervisorName string
	ShortAddress   string

	Instagram string
	Youtube   string
	Tiktok    string
	Website   string
	Latitude  string
	Longitude string

	MissionVision string
	History       string

	PaymentStatus entitlement.PaymentStatus `gorm:"type:varchar(10);not null;default:'unpaid'"`
	ProfileLevel  entitlement.Level         `gorm:"type:varchar(10);not null;default:'basic'"`

	// MemberNumber (NIP) is issued after payment verification. Nil until
	// then; crew-number issuance depends on it being set.
	MemberNumber *string `gorm:"uniqueIndex:idx_institutions_member_number"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PromotionFields maps the institution's stored profile into the
// leveling validator's input.
func (i Institution) PromotionFields() entitlement.PromotionFields {
	return entitlement.PromotionFields{
		InstitutionName: i.Name,
		SupervisorName:  i.SupervisorName,
		ShortAddress:    i.ShortAddress,
		Instagram:       i.Instagram,
		Youtube:         i.Youtube,
		Tiktok:          i.Tiktok,
		Website:         i.Website,
		Latitude:        i.Latitude,
		Longitude:       i.Longitude,
		MissionVision:   i.MissionVision,
		History:         i.History,
	}
}
