package jobs

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// TerminalStatuses are never overwritten once written.
var TerminalStatuses = []string{StatusCompleted, StatusFailed}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

type ExtractionJob struct {
	ID          string         `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	CaseID      string         `gorm:"column:case_id;type:varchar(100);not null;index" json:"case_id"`
	Status      string         `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	CallbackURL *string        `gorm:"column:callback_url;type:varchar(500)" json:"callback_url"`
	Error       *string        `gorm:"column:error;type:text" json:"error"`
	Result      datatypes.JSON `gorm:"column:result" json:"result,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (ExtractionJob) TableName() string { return "extraction_jobs" }

// Task is one unit of queued work. Payload never reaches the database.
type Task struct {
	JobID   string
	Type    string
	Payload map[string]any
}
