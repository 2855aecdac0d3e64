package extraction

// Event is one entry of a case timeline. EventDate is kept exactly as the
// model wrote it.
type Event struct {
	EventID          int    `json:"event_id"`
	EventName        string `json:"event_name"`
	EventDescription string `json:"event_description"`
	EventDate        string `json:"event_date"`
	EventPageInit    int    `json:"event_page_init"`
	EventPageEnd     int    `json:"event_page_end"`
}

type Evidence struct {
	EvidenceID       int    `json:"evidence_id"`
	EvidenceName     string `json:"evidence_name"`
	EvidenceFlaw     string `json:"evidence_flaw"`
	EvidencePageInit int    `json:"evidence_page_init"`
	EvidencePageEnd  int    `json:"evidence_page_end"`
}

type CaseExtraction struct {
	Resume   string     `json:"resume"`
	Timeline []Event    `json:"timeline"`
	Evidence []Evidence `json:"evidence"`
}

// Result is the outcome of reconciling raw model text.
type Result struct {
	Extraction       CaseExtraction
	RawOutput        string
	Parsed           bool
	ValidationError  bool
	ValidationDetail string
}

const EmptyResume = "(empty resume)"

// Stub returns an extraction with the given summary and empty lists.
func Stub(resume string) CaseExtraction {
	return CaseExtraction{Resume: resume, Timeline: []Event{}, Evidence: []Evidence{}}
}

// Renumber rewrites event and evidence ids to their 0-based positions.
func (c *CaseExtraction) Renumber() {
	if c.Timeline == nil {
		c.Timeline = []Event{}
	}
	if c.Evidence == nil {
		c.Evidence = []Evidence{}
	}
	for i := range c.Timeline {
		c.Timeline[i].EventID = i
	}
	for i := range c.Evidence {
		c.Evidence[i].EvidenceID = i
	}
}
