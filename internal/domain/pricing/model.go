package pricing

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Setting is the single-row activation price configuration, adjustable
// by the central admin.
type Setting struct {
	ID              uint    `gorm:"primaryKey"`
	ActivationPrice float64 `gorm:"not null"`
	Currency        string  `gorm:"type:varchar(3);not null;default:'IDR'"`

	UpdatedAt time.Time
}

const defaultActivationPrice = 250000

// Current returns the activation price row, creating the default when
// none exists yet.
func Current(db *gorm.DB) (Setting, error) {
	var s Setting
	err := db.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = Setting{ActivationPrice: defaultActivationPrice, Currency: "IDR"}
		err = db.Create(&s).Error
	}
	return s, err
}
