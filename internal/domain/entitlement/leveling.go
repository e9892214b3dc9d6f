package entitlement

import (
	"errors"
	"fmt"
	"strings"
)

// PromotionFields is the candidate profile data submitted with a level
// claim. Region and city are controlled by the regional admin and are
// display-only to the submitting identity; their presence here is an
// error, not an update.
type PromotionFields struct {
	InstitutionName string
	SupervisorName  string
	ShortAddress    string

	Instagram string
	Youtube   string
	Tiktok    string
	Website   string
	Latitude  string
	Longitude string

	MissionVision string
	History       string

	Region string
	City   string
}

var (
	// ErrInvalidTransition: promotion must target exactly the next tier;
	// non-adjacent and backward requests are refused.
	ErrInvalidTransition = errors.New("promotion must target the next tier")

	// ErrAlreadyAtOrAboveTarget guards idempotence: re-claiming a tier
	// already reached is rejected rather than silently re-applied, so
	// side effects (congratulatory notifications, audit entries) never
	// duplicate.
	ErrAlreadyAtOrAboveTarget = errors.New("level already at or above target")

	// ErrRegionImmutable: region assignment belongs to the regional
	// admin and cannot ride along on a self-service promotion.
	ErrRegionImmutable = errors.New("region fields are immutable in self-service promotion")
)

// MissingFieldsError lists exactly which required fields are absent so
// the caller can render field-specific remediation, not a generic
// failure.
type MissingFieldsError struct {
	Target Level
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("level %s requires: %s", e.Target, strings.Join(e.Fields, ", "))
}

// requiredFor returns the missing-field names for a tier. Requirements
// are cumulative: each tier implies everything below it.
func requiredFor(target Level, f PromotionFields) []string {
	var missing []string

	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	if target.AtLeast(LevelSilver) {
		if blank(f.InstitutionName) {
			missing = append(missing, "institution_name")
		}
		if blank(f.SupervisorName) {
			missing = append(missing, "supervisor_name")
		}
		if blank(f.ShortAddress) {
			missing = append(missing, "short_address")
		}
	}
	if target.AtLeast(LevelGold) {
		if blank(f.Instagram) && blank(f.Youtube) && blank(f.Tiktok) && blank(f.Website) {
			missing = append(missing, "social_link")
		}
		if blank(f.Latitude) {
			missing = append(missing, "latitude")
		}
		if blank(f.Longitude) {
			missing = append(missing, "longitude")
		}
	}
	if target.AtLeast(LevelPlatinum) {
		if blank(f.MissionVision) {
			missing = append(missing, "mission_vision")
		}
		if blank(f.History) {
			missing = append(missing, "history")
		}
	}
	return missing
}

// AttemptPromotion validates a forward-only, adjacent level claim and
// returns the new level. Promotion is all-or-nothing: on any error the
// current level stands untouched.
func AttemptPromotion(current, target Level, fields PromotionFields) (Level, error) {
	if current.Rank() < 0 || target.Rank() < 0 {
		return current, ErrInvalidTransition
	}
	if target.Rank() <= current.Rank() {
		return current, ErrAlreadyAtOrAboveTarget
	}
	if target != current.Next() {
		return current, ErrInvalidTransition
	}
	if strings.TrimSpace(fields.Region) != "" || strings.TrimSpace(fields.City) != "" {
		return current, ErrRegionImmutable
	}
	if missing := requiredFor(target, fields); len(missing) > 0 {
		return current, &MissingFieldsError{Target: target, Fields: missing}
	}
	return target, nil
}
