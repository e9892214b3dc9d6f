package billing

import (
	"time"
)

// Method distinguishes how an activation payment arrived.
type Method string

const (
	MethodStripe   Method = "stripe"
	MethodTransfer Method = "transfer" // manual transfer, verified by finance admin
)

// Payment records one activation payment attempt of an institution.
type Payment struct {
	ID            uint `gorm:"primaryKey"`
	InstitutionID uint `gorm:"not null;index:idx_payments_institution_id"`

	Method          Method  `gorm:"type:varchar(10);not null"`
	StripeSessionID *string `gorm:"uniqueIndex:idx_payments_stripe_session_id"`
	Amount          float64
	Currency        string `gorm:"type:varchar(3);default:'IDR'"`
	Status          string
	ReceiptURL      *string

	// VerifiedBy is the finance/central admin user who verified a manual
	// transfer; nil for stripe-confirmed payments.
	VerifiedBy *uint

	CreatedAt time.Time
}
