package audit

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"membership-app/internal/domain/access"
)

// Action is a closed vocabulary of auditable admin actions.
type Action string

const (
	ActionClaimApproved    Action = "claim_approved"
	ActionClaimRejected    Action = "claim_rejected"
	ActionPaymentVerified  Action = "payment_verified"
	ActionPaymentRejected  Action = "payment_rejected"
	ActionNumberIssued     Action = "nip_issued"
	ActionCrewNumberIssued Action = "niam_issued"
	ActionRoleChanged      Action = "role_changed"
	ActionLevelPromoted    Action = "level_promoted"
	ActionCrewUpdated      Action = "crew_updated"
	ActionCrewDeleted      Action = "crew_deleted"
	ActionPriceChanged     Action = "price_changed"
)

// Entry is one audit record: who did what to which target, when.
type Entry struct {
	ID         string      `gorm:"type:varchar(36);primaryKey"`
	ActorID    uint        `gorm:"not null"`
	ActorRole  access.Role `gorm:"type:varchar(20)"`
	Action     Action      `gorm:"type:varchar(40);not null;index:idx_audit_entries_action"`
	TargetType string      `gorm:"type:varchar(20)"`
	TargetID   string
	Details    string
	RegionID   *uint

	CreatedAt time.Time
}

func (Entry) TableName() string { return "audit_entries" }

// Record persists an entry. Audit writes are fire-and-forget from the
// caller's point of view: a failed write is logged, never propagated
// into the action it describes.
func Record(db *gorm.DB, e Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := db.Create(&e).Error; err != nil {
		log.Printf("audit: failed to record %s on %s/%s: %v", e.Action, e.TargetType, e.TargetID, err)
	}
}
