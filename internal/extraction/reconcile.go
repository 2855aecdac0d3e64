package extraction

import (
	"encoding/json"
	"strings"
)

// Reconcile turns raw model text into an extraction. It never fails: when
// the recovered document does not match the schema the result is assembled
// item by item and ValidationError is set.
func Reconcile(raw string) Result {
	doc, parsed := ParseJSONText(raw)
	NormalizeIDs(doc)

	res := Result{RawOutput: raw, Parsed: parsed}
	if err := Validate(doc); err != nil {
		res.ValidationError = true
		res.ValidationDetail = err.Error()
		res.Extraction = bestEffort(doc)
		return res
	}

	var ce CaseExtraction
	if err := remarshal(doc, &ce); err != nil {
		res.ValidationError = true
		res.ValidationDetail = err.Error()
		res.Extraction = bestEffort(doc)
		return res
	}
	ce.Renumber()
	res.Extraction = ce
	return res
}

func bestEffort(doc map[string]any) CaseExtraction {
	out := Stub(EmptyResume)
	if s, ok := doc["resume"].(string); ok && strings.TrimSpace(s) != "" {
		out.Resume = s
	}
	if items, ok := doc["timeline"].([]any); ok {
		for _, item := range items {
			var ev Event
			if remarshal(item, &ev) == nil {
				out.Timeline = append(out.Timeline, ev)
			}
		}
	}
	if items, ok := doc["evidence"].([]any); ok {
		for _, item := range items {
			var e Evidence
			if remarshal(item, &e) == nil {
				out.Evidence = append(out.Evidence, e)
			}
		}
	}
	out.Renumber()
	return out
}

func remarshal(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
