package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yungbote/juridica-backend/internal/data/repos/testutil"
	"github.com/yungbote/juridica-backend/internal/domain"
	"github.com/yungbote/juridica-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/juridica-backend/internal/pkg/errors"
	"github.com/yungbote/juridica-backend/internal/pkg/pointers"
)

func TestExtractionJobLifecycle(t *testing.T) {
	repo := NewExtractionJobRepo(testutil.DB(t), testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	created, err := repo.Create(dbc, "job-1", "CASE-0001", pointers.String("http://hook.local/cb"))
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, created.Status)

	ok, err := repo.MarkRunning(dbc, "job-1")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(5 * time.Millisecond)
	ok, err = repo.MarkSucceeded(dbc, "job-1", datatypes.JSON(`{"resume":"r","timeline":[],"evidence":[]}`))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.Get(dbc, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	assert.Equal(t, "http://hook.local/cb", pointers.Deref(got.CallbackURL))
	assert.Nil(t, got.Error)
	assert.JSONEq(t, `{"resume":"r","timeline":[],"evidence":[]}`, string(got.Result))
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestTerminalStatusIsNeverOverwritten(t *testing.T) {
	repo := NewExtractionJobRepo(testutil.DB(t), testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	_, err := repo.Create(dbc, "job-2", "CASE-0002", nil)
	require.NoError(t, err)
	ok, err := repo.MarkFailed(dbc, "job-2", "Failed to download PDF: 404")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.MarkRunning(dbc, "job-2")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = repo.MarkSucceeded(dbc, "job-2", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.Get(dbc, "job-2")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Equal(t, "Failed to download PDF: 404", pointers.Deref(got.Error))
	assert.Nil(t, got.CallbackURL)
}

func TestUnknownJob(t *testing.T) {
	repo := NewExtractionJobRepo(testutil.DB(t), testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	ok, err := repo.MarkRunning(dbc, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Get(dbc, "nope")
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}
