package postgres

import (
	"log"

	"github.com/Dompi123/fomo-pr-sub002/internal/config"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PassConfig) *gorm.DB {
	dsn := cfg.PassDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.VenuePassTypeModel{}, &models.PassModel{}, &models.LifecycleEventModel{})

	return db
}
