package extraction

import (
	"fmt"
	"strings"
)

// BuildPrompt returns the instruction sent alongside the PDF. pageCount is
// omitted from the text when unknown (<= 0).
func BuildPrompt(caseID string, pageCount int) string {
	var b strings.Builder
	b.WriteString("You are a legal analyst. Read the attached court case PDF")
	if caseID != "" {
		fmt.Fprintf(&b, " (case %s)", caseID)
	}
	if pageCount > 0 {
		fmt.Fprintf(&b, ", which has %d pages", pageCount)
	}
	b.WriteString(".\n\n")
	b.WriteString("Return ONLY a JSON object, with no commentary and no code fences, with exactly this shape:\n")
	b.WriteString(`{
  "resume": "concise summary of the case",
  "timeline": [
    {"event_id": 0, "event_name": "", "event_description": "", "event_date": "", "event_page_init": 1, "event_page_end": 1}
  ],
  "evidence": [
    {"evidence_id": 0, "evidence_name": "", "evidence_flaw": "", "evidence_page_init": 1, "evidence_page_end": 1}
  ]
}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- timeline lists the relevant events in chronological order.\n")
	b.WriteString("- event_date keeps the date as written in the document (DD/MM/YYYY or ISO).\n")
	b.WriteString("- evidence lists each piece of evidence and any flaw or weakness found in it (empty string when none).\n")
	b.WriteString("- page numbers are 1-based integers")
	if pageCount > 0 {
		fmt.Fprintf(&b, " between 1 and %d", pageCount)
	}
	b.WriteString(".\n- ids start at 0 and increase by one.\n")
	return b.String()
}
