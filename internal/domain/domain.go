package domain

import (
	"github.com/yungbote/juridica-backend/internal/domain/cases"
	"github.com/yungbote/juridica-backend/internal/domain/jobs"
)

type Case = cases.Case
type TimelineEvent = cases.TimelineEvent
type Evidence = cases.Evidence
type CaseSummary = cases.Summary

type ExtractionJob = jobs.ExtractionJob
type JobTask = jobs.Task

const (
	JobStatusPending   = jobs.StatusPending
	JobStatusRunning   = jobs.StatusRunning
	JobStatusCompleted = jobs.StatusCompleted
	JobStatusFailed    = jobs.StatusFailed
)

var IsTerminalJobStatus = jobs.IsTerminal
