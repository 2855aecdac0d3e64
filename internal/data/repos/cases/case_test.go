package cases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/juridica-backend/internal/data/repos/testutil"
	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/extraction"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/juridica-backend/internal/pkg/errors"
)

func sample(resume string, events, evidence int) extraction.CaseExtraction {
	ce := extraction.Stub(resume)
	for i := 0; i < events; i++ {
		ce.Timeline = append(ce.Timeline, extraction.Event{
			EventID: i, EventName: resume + " event", EventDescription: "d", EventDate: "01/01/2020",
			EventPageInit: i + 1, EventPageEnd: i + 2,
		})
	}
	for i := 0; i < evidence; i++ {
		ce.Evidence = append(ce.Evidence, extraction.Evidence{
			EvidenceID: i, EvidenceName: resume + " evidence", EvidenceFlaw: "", EvidencePageInit: 1, EvidencePageEnd: 1,
		})
	}
	return ce
}

func TestSaveExtractionReplacesChildren(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCaseRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	require.NoError(t, repo.SaveExtraction(dbc, "CASE-0001", sample("first", 3, 2)))
	require.NoError(t, repo.SaveExtraction(dbc, "CASE-0001", sample("second", 1, 1)))

	got, err := repo.GetCase(dbc, "CASE-0001")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Resume)
	require.Len(t, got.Timeline, 1)
	require.Len(t, got.Evidence, 1)
	assert.Equal(t, "second event", got.Timeline[0].EventName)
	assert.Equal(t, "second evidence", got.Evidence[0].EvidenceName)

	var events, evidence int64
	require.NoError(t, db.Model(&domain.TimelineEvent{}).Where("case_id = ?", "CASE-0001").Count(&events).Error)
	require.NoError(t, db.Model(&domain.Evidence{}).Where("case_id = ?", "CASE-0001").Count(&evidence).Error)
	assert.EqualValues(t, 1, events)
	assert.EqualValues(t, 1, evidence)
}

func TestGetCaseOrdersChildrenAndHandlesMissing(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCaseRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	require.NoError(t, repo.SaveExtraction(dbc, "CASE-0002", sample("ordered", 4, 0)))
	got, err := repo.GetCase(dbc, "CASE-0002")
	require.NoError(t, err)
	for i, ev := range got.Timeline {
		assert.Equal(t, i, ev.EventID)
	}
	assert.NotNil(t, got.Evidence)

	_, err = repo.GetCase(dbc, "missing")
	assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
}

func TestListCasesCountsChildren(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCaseRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	empty, err := repo.ListCases(dbc)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.SaveExtraction(dbc, "CASE-B", sample("b", 2, 1)))
	require.NoError(t, repo.SaveExtraction(dbc, "CASE-A", sample("a", 0, 3)))

	list, err := repo.ListCases(dbc)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.CaseSummary{CaseID: "CASE-A", Resume: "a", TimelineCount: 0, EvidenceCount: 3}, list[0])
	assert.Equal(t, domain.CaseSummary{CaseID: "CASE-B", Resume: "b", TimelineCount: 2, EvidenceCount: 1}, list[1])
}

func TestSaveExtractionInsideCallerTransaction(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCaseRepo(db, testutil.Logger(t))
	tx := db.Begin()
	require.NoError(t, tx.Error)

	require.NoError(t, repo.SaveExtraction(dbctx.Context{Ctx: context.Background(), Tx: tx}, "CASE-TX", sample("tx", 1, 1)))
	require.NoError(t, tx.Rollback().Error)

	_, err := repo.GetCase(dbctx.Context{Ctx: context.Background()}, "CASE-TX")
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestSaveExtractionRejectsEmptyCaseID(t *testing.T) {
	repo := NewCaseRepo(testutil.DB(t), testutil.Logger(t))
	err := repo.SaveExtraction(dbctx.Context{}, "  ", sample("x", 0, 0))
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)
}

func TestSaveExtractionRollsBackOnFailedInsert(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCaseRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	require.NoError(t, repo.SaveExtraction(dbc, "CASE-RB", sample("first", 2, 2)))

	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_evidence", func(tx *gorm.DB) {
		if tx.Statement.Table == "evidences" {
			_ = tx.AddError(errors.New("boom"))
		}
	}))
	err := repo.SaveExtraction(dbc, "CASE-RB", sample("second", 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert evidence")
	require.NoError(t, db.Callback().Create().Remove("test:fail_evidence"))

	got, err := repo.GetCase(dbc, "CASE-RB")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Resume)
	require.Len(t, got.Timeline, 2)
	require.Len(t, got.Evidence, 2)
	assert.Equal(t, "first event", got.Timeline[0].EventName)
	assert.Equal(t, "first evidence", got.Evidence[0].EvidenceName)
}
