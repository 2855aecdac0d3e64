package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/juridica-backend/internal/data/repos/cases"
	"github.com/yungbote/juridica-backend/internal/data/repos/jobs"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

type CaseRepo = cases.CaseRepo
type ExtractionJobRepo = jobs.ExtractionJobRepo

func NewCaseRepo(db *gorm.DB, baseLog *logger.Logger) CaseRepo {
	return cases.NewCaseRepo(db, baseLog)
}

func NewExtractionJobRepo(db *gorm.DB, baseLog *logger.Logger) ExtractionJobRepo {
	return jobs.NewExtractionJobRepo(db, baseLog)
}
