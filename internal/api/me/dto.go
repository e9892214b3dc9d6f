package me

// MeResponse is the composite the SPA boots from: identity, access
// profile, institution snapshot and the per-feature lock verdicts.
type MeResponse struct {
	User        UserDTO         `json:"user"`
	Access      AccessDTO       `json:"access"`
	Institution *InstitutionDTO `json:"institution"`
}

type UserDTO struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Tel        *string `json:"tel"`
	IsVerified bool    `json:"is_verified"`
}

type AccessDTO struct {
	Role          string `json:"role"`
	AccountStatus string `json:"account_status"`
	RegionID      *uint  `json:"region_id"`
}

type InstitutionDTO struct {
	ID                  uint    `json:"id"`
	Name                string  `json:"name"`
	PaymentStatus       string  `json:"payment_status"`
	ProfileLevel        string  `json:"profile_level"`
	MemberNumber        *string `json:"member_number"`
	MemberNumberDisplay *string `json:"member_number_display"`
	CrewSlotCount       int     `json:"crew_slot_count"`
	CrewSlotCap         int     `json:"crew_slot_cap"`

	Locks map[string]LockDTO `json:"locks"`
}

type LockDTO struct {
	Locked bool   `json:"locked"`
	Reason string `json:"reason,omitempty"`
}
