package regions

import "time"

// Region is an administrative area managed by a regional admin. Its
// code participates in member-number composition.
type Region struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Code string `gorm:"type:varchar(4);not null;uniqueIndex:idx_regions_code"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
