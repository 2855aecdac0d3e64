package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/juridica-backend/internal/data/repos"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

type Repos struct {
	Case          repos.CaseRepo
	ExtractionJob repos.ExtractionJobRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Case:          repos.NewCaseRepo(db, log),
		ExtractionJob: repos.NewExtractionJobRepo(db, log),
	}
}
