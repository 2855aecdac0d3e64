package cases

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/extraction"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/juridica-backend/internal/pkg/errors"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
)

type CaseRepo interface {
	SaveExtraction(dbc dbctx.Context, caseID string, ce extraction.CaseExtraction) error
	GetCase(dbc dbctx.Context, caseID string) (*extraction.CaseExtraction, error)
	ListCases(dbc dbctx.Context) ([]domain.CaseSummary, error)
}

type caseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCaseRepo(db *gorm.DB, baseLog *logger.Logger) CaseRepo {
	return &caseRepo{
		db:  db,
		log: baseLog.With("repo", "CaseRepo"),
	}
}

// SaveExtraction replaces the stored summary and every child row of caseID
// in a single transaction.
func (r *caseRepo) SaveExtraction(dbc dbctx.Context, caseID string, ce extraction.CaseExtraction) error {
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return fmt.Errorf("%w: empty case_id", pkgerrors.ErrInvalidArgument)
	}
	err := dbc.Conn(r.db).Transaction(func(tx *gorm.DB) error {
		row := &domain.Case{CaseID: caseID, Resume: ce.Resume}
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "case_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"resume"}),
		}).Create(row).Error; err != nil {
			return fmt.Errorf("upsert case: %w", err)
		}

		if err := tx.Where("case_id = ?", caseID).Delete(&domain.TimelineEvent{}).Error; err != nil {
			return fmt.Errorf("delete timeline: %w", err)
		}
		if err := tx.Where("case_id = ?", caseID).Delete(&domain.Evidence{}).Error; err != nil {
			return fmt.Errorf("delete evidence: %w", err)
		}

		if events := toTimelineRows(caseID, ce.Timeline); len(events) > 0 {
			if err := tx.Create(&events).Error; err != nil {
				return fmt.Errorf("insert timeline: %w", err)
			}
		}
		if evidence := toEvidenceRows(caseID, ce.Evidence); len(evidence) > 0 {
			if err := tx.Create(&evidence).Error; err != nil {
				return fmt.Errorf("insert evidence: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.log.Warn("save extraction rolled back", "case_id", caseID, "error", err)
		return err
	}
	return nil
}

func (r *caseRepo) GetCase(dbc dbctx.Context, caseID string) (*extraction.CaseExtraction, error) {
	conn := dbc.Conn(r.db)
	var row domain.Case
	err := conn.
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Evidence", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("case_id = ?", caseID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out := fromRows(row)
	return &out, nil
}

func (r *caseRepo) ListCases(dbc dbctx.Context) ([]domain.CaseSummary, error) {
	var out []domain.CaseSummary
	err := dbc.Conn(r.db).
		Table("cases AS c").
		Select(`c.case_id AS case_id, c.resume AS resume,
			(SELECT COUNT(*) FROM timeline_events t WHERE t.case_id = c.case_id) AS timeline_count,
			(SELECT COUNT(*) FROM evidences e WHERE e.case_id = c.case_id) AS evidence_count`).
		Order("c.case_id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.CaseSummary{}
	}
	return out, nil
}

func toTimelineRows(caseID string, events []extraction.Event) []domain.TimelineEvent {
	out := make([]domain.TimelineEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, domain.TimelineEvent{
			CaseID:           caseID,
			EventID:          ev.EventID,
			EventName:        ev.EventName,
			EventDescription: ev.EventDescription,
			EventDate:        ev.EventDate,
			EventPageInit:    ev.EventPageInit,
			EventPageEnd:     ev.EventPageEnd,
		})
	}
	return out
}

func toEvidenceRows(caseID string, items []extraction.Evidence) []domain.Evidence {
	out := make([]domain.Evidence, 0, len(items))
	for _, e := range items {
		out = append(out, domain.Evidence{
			CaseID:           caseID,
			EvidenceID:       e.EvidenceID,
			EvidenceName:     e.EvidenceName,
			EvidenceFlaw:     e.EvidenceFlaw,
			EvidencePageInit: e.EvidencePageInit,
			EvidencePageEnd:  e.EvidencePageEnd,
		})
	}
	return out
}

func fromRows(row domain.Case) extraction.CaseExtraction {
	out := extraction.Stub(row.Resume)
	for _, t := range row.Timeline {
		out.Timeline = append(out.Timeline, extraction.Event{
			EventID:          t.EventID,
			EventName:        t.EventName,
			EventDescription: t.EventDescription,
			EventDate:        t.EventDate,
			EventPageInit:    t.EventPageInit,
			EventPageEnd:     t.EventPageEnd,
		})
	}
	for _, e := range row.Evidence {
		out.Evidence = append(out.Evidence, extraction.Evidence{
			EvidenceID:       e.EvidenceID,
			EvidenceName:     e.EvidenceName,
			EvidenceFlaw:     e.EvidenceFlaw,
			EvidencePageInit: e.EvidencePageInit,
			EvidencePageEnd:  e.EvidencePageEnd,
		})
	}
	return out
}
