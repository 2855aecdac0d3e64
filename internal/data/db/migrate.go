package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/juridica-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Case{},
		&domain.TimelineEvent{},
		&domain.Evidence{},
		&domain.ExtractionJob{},
	)
}
