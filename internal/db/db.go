package db

import (
	"log"
	"time"

	"github.com/glowbook/salon-api/internal/config"
	"github.com/glowbook/salon-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE business_profiles
        SET timezone = 'Africa/Johannesburg'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.BusinessProfile{},
		&models.User{},
		&models.SalonService{},
		&models.Booking{},
		&models.VerificationChecklist{},
		&models.PaymentSetting{},
		&models.VerificationEmailLog{},
		&models.AmendmentRequest{},
		&models.BusinessDocument{},
		&models.AuditLog{},
	)
}
