package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/loopwear/loopwear-violation-service/internal/config"
	"github.com/loopwear/loopwear-violation-service/internal/infrastructure/postgres/models"
)

func MustInitDB(cfg *config.ViolationConfig) *gorm.DB {
	dsn := cfg.ViolationDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	// Only the tables this service owns; orders, order_items, users and
	// chat_messages belong to the marketplace.
	db.AutoMigrate(
		&models.ViolationCaseModel{},
		&models.EvidenceRecordModel{},
		&models.DisputeResolutionModel{},
		&models.SettlementModel{},
	)

	return db
}
