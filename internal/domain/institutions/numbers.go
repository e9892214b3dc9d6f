package institutions

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"membership-app/internal/domain/entitlement"
	"membership-app/internal/domain/regions"
)

var (
	// ErrPaymentRequired: the NIP is only issued once the activation
	// payment has been verified.
	ErrPaymentRequired = errors.New("institution activation payment not verified")
	ErrRegionNotFound  = errors.New("region not found for institution")
)

// IssueMemberNumber issues the institution's NIP. Idempotent: an
// already-issued number is returned unchanged. Numbers are composed as
// region code + join year + per-region sequence, stored compact
// (digits only).
func IssueMemberNumber(db *gorm.DB, institutionID uint) (string, error) {
	var number string
	err := db.Transaction(func(tx *gorm.DB) error {
		var inst Institution
		if err := tx.First(&inst, institutionID).Error; err != nil {
			return err
		}
		if inst.MemberNumber != nil && *inst.MemberNumber != "" {
			number = *inst.MemberNumber
			return nil
		}
		if inst.PaymentStatus != entitlement.PaymentPaid {
			return ErrPaymentRequired
		}

		var region regions.Region
		if err := tx.First(&region, inst.RegionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegionNotFound
			}
			return err
		}

		var issued int64
		if err := tx.Model(&Institution{}).
			Where("region_id = ? AND member_number IS NOT NULL", inst.RegionID).
			Count(&issued).Error; err != nil {
			return err
		}

		number = fmt.Sprintf("%s%d%04d", region.Code, time.Now().Year(), issued+1)
		return tx.Model(&inst).Update("member_number", number).Error
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// FormatNumber renders a stored number for display. Compact keeps the
// raw digits; otherwise dots separate region, year and sequence
// (31.2026.0042 style).
func FormatNumber(raw string, compact bool) string {
	raw = strings.TrimSpace(raw)
	if compact || len(raw) < 8 {
		return raw
	}
	// trailing 4 digits are the sequence, the 4 before that the year
	seq := raw[len(raw)-4:]
	year := raw[len(raw)-8 : len(raw)-4]
	prefix := raw[:len(raw)-8]
	if prefix == "" {
		return year + "." + seq
	}
	return prefix + "." + year + "." + seq
}
