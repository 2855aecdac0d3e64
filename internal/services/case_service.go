package services

import (
	"errors"
	"strings"

	"github.com/yungbote/juridica-backend/internal/data/repos"
	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/extraction"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/juridica-backend/internal/pkg/errors"
	"github.com/yungbote/juridica-backend/internal/pkg/logger"
	"github.com/yungbote/juridica-backend/internal/platform/apierr"
)

var errCaseNotFound = errors.New("Case not found")

type CaseService interface {
	Get(dbc dbctx.Context, caseID string) (*extraction.CaseExtraction, error)
	List(dbc dbctx.Context) ([]domain.CaseSummary, error)
}

type caseService struct {
	log   *logger.Logger
	cases repos.CaseRepo
}

func NewCaseService(baseLog *logger.Logger, cases repos.CaseRepo) CaseService {
	return &caseService{
		log:   baseLog.With("service", "CaseService"),
		cases: cases,
	}
}

func (s *caseService) Get(dbc dbctx.Context, caseID string) (*extraction.CaseExtraction, error) {
	ce, err := s.cases.GetCase(dbc, strings.TrimSpace(caseID))
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("case_not_found", errCaseNotFound)
	}
	if err != nil {
		return nil, apierr.Internal("load_case_failed", err)
	}
	return ce, nil
}

func (s *caseService) List(dbc dbctx.Context) ([]domain.CaseSummary, error) {
	out, err := s.cases.ListCases(dbc)
	if err != nil {
		return nil, apierr.Internal("list_cases_failed", err)
	}
	return out, nil
}
