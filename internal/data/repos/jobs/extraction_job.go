package jobs

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/juridica-backend/internal/domain"
	domainjobs "github.com/yungbote/juridica-backend/internal/domain/jobs"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/juridica-backend/internal/pkg/errors"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/pkg/pointers"
)

type ExtractionJobRepo interface {
	Create(dbc dbctx.Context, jobID string, caseID string, callbackURL *string) (*domain.ExtractionJob, error)
	Get(dbc dbctx.Context, jobID string) (*domain.ExtractionJob, error)
	MarkRunning(dbc dbctx.Context, jobID string) (bool, error)
	MarkSucceeded(dbc dbctx.Context, jobID string, result datatypes.JSON) (bool, error)
	MarkFailed(dbc dbctx.Context, jobID string, msg string) (bool, error)
}

type extractionJobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExtractionJobRepo(db *gorm.DB, baseLog *logger.Logger) ExtractionJobRepo {
	return &extractionJobRepo{
		db:  db,
		log: baseLog.With("repo", "ExtractionJobRepo"),
	}
}

func (r *extractionJobRepo) Create(dbc dbctx.Context, jobID string, caseID string, callbackURL *string) (*domain.ExtractionJob, error) {
	now := time.Now().UTC()
	job := &domain.ExtractionJob{
		ID:          jobID,
		CaseID:      caseID,
		Status:      domain.JobStatusPending,
		CallbackURL: pointers.NonEmpty(pointers.Deref(callbackURL)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := dbc.Conn(r.db).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (r *extractionJobRepo) Get(dbc dbctx.Context, jobID string) (*domain.ExtractionJob, error) {
	var job domain.ExtractionJob
	err := dbc.Conn(r.db).Where("id = ?", strings.TrimSpace(jobID)).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *extractionJobRepo) MarkRunning(dbc dbctx.Context, jobID string) (bool, error) {
	return r.updateUnlessTerminal(dbc, jobID, map[string]interface{}{
		"status": domain.JobStatusRunning,
	})
}

func (r *extractionJobRepo) MarkSucceeded(dbc dbctx.Context, jobID string, result datatypes.JSON) (bool, error) {
	return r.updateUnlessTerminal(dbc, jobID, map[string]interface{}{
		"status": domain.JobStatusCompleted,
		"error":  nil,
		"result": result,
	})
}

func (r *extractionJobRepo) MarkFailed(dbc dbctx.Context, jobID string, msg string) (bool, error) {
	return r.updateUnlessTerminal(dbc, jobID, map[string]interface{}{
		"status": domain.JobStatusFailed,
		"error":  msg,
	})
}

// updateUnlessTerminal reports false when the job is unknown or already
// completed/failed.
func (r *extractionJobRepo) updateUnlessTerminal(dbc dbctx.Context, jobID string, updates map[string]interface{}) (bool, error) {
	if strings.TrimSpace(jobID) == "" {
		return false, nil
	}
	updates["updated_at"] = time.Now().UTC()
	res := dbc.Conn(r.db).Model(&domain.ExtractionJob{}).
		Where("id = ? AND status NOT IN ?", jobID, domainjobs.TerminalStatuses).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Debug("job update skipped", "job_id", jobID, "status", updates["status"])
		return false, nil
	}
	return true, nil
}
