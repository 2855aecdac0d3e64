package cases

type Case struct {
	CaseID   string          `gorm:"column:case_id;type:varchar(100);primaryKey" json:"case_id"`
	Resume   string          `gorm:"column:resume;type:text;not null;default:''" json:"resume"`
	Timeline []TimelineEvent `gorm:"foreignKey:CaseID;references:CaseID;constraint:OnDelete:CASCADE" json:"timeline,omitempty"`
	Evidence []Evidence      `gorm:"foreignKey:CaseID;references:CaseID;constraint:OnDelete:CASCADE" json:"evidence,omitempty"`
}

func (Case) TableName() string { return "cases" }

type TimelineEvent struct {
	ID               uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CaseID           string `gorm:"column:case_id;type:varchar(100);not null;index" json:"-"`
	EventID          int    `gorm:"column:event_id;not null" json:"event_id"`
	EventName        string `gorm:"column:event_name;type:varchar(255);not null" json:"event_name"`
	EventDescription string `gorm:"column:event_description;type:text;not null" json:"event_description"`
	EventDate        string `gorm:"column:event_date;type:varchar(40);not null" json:"event_date"`
	EventPageInit    int    `gorm:"column:event_page_init;not null" json:"event_page_init"`
	EventPageEnd     int    `gorm:"column:event_page_end;not null" json:"event_page_end"`
}

func (TimelineEvent) TableName() string { return "timeline_events" }

type Evidence struct {
	ID               uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CaseID           string `gorm:"column:case_id;type:varchar(100);not null;index" json:"-"`
	EvidenceID       int    `gorm:"column:evidence_id;not null" json:"evidence_id"`
	EvidenceName     string `gorm:"column:evidence_name;type:varchar(255);not null" json:"evidence_name"`
	EvidenceFlaw     string `gorm:"column:evidence_flaw;type:text;not null" json:"evidence_flaw"`
	EvidencePageInit int    `gorm:"column:evidence_page_init;not null" json:"evidence_page_init"`
	EvidencePageEnd  int    `gorm:"column:evidence_page_end;not null" json:"evidence_page_end"`
}

func (Evidence) TableName() string { return "evidences" }

// Summary is the list view of a stored case.
type Summary struct {
	CaseID        string `json:"case_id"`
	Resume        string `json:"resume"`
	TimelineCount int64  `json:"timeline_count"`
	EvidenceCount int64  `json:"evidence_count"`
}
