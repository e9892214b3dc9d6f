package database

import (
	"fmt"
	"log"
	"os"

	"membership-app/internal/domain/access"
	"membership-app/internal/domain/audit"
	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/claims"
	"membership-app/internal/domain/crew"
	"membership-app/internal/domain/institutions"
	"membership-app/internal/domain/pricing"
	"membership-app/internal/domain/regions"
	"membership-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// identity + access
		&users.User{},
		&access.Profile{},
		&regions.Region{},

		// membership
		&institutions.Institution{},
		&crew.Member{},
		&claims.Claim{},

		// billing
		&billing.Payment{},
		&pricing.Setting{},

		// audit
		&audit.Entry{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}
