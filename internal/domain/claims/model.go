package claims

import "time"

// Claim is a staged self-service registration/claim submission. It is
// advisory only: nothing here is a source of truth for access control.
// A claim is consumed exactly once by OTP verification, which creates
// the user and its pending access profile.
type Claim struct {
	ID  uint   `gorm:"primaryKey"`
	Ref string `gorm:"type:varchar(36);not null;uniqueIndex:idx_claims_ref"`

	Name            string `gorm:"not null"`
	Email           string `gorm:"not null"`
	Tel             string
	InstitutionName string
	RegionID        uint

	// OTPSecret backs the one-time verification codes for this claim.
	OTPSecret  string `gorm:"not null"`
	ConsumedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Claim) Consumed() bool { return c.ConsumedAt != nil }
