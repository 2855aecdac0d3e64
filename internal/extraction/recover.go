package extraction

import (
	"encoding/json"
	"regexp"
	"strings"
)

var trailingObject = regexp.MustCompile(`\{[\s\S]*\}\s*$`)

// ParseJSONText recovers a JSON object from raw model text. It returns an
// empty map and false when nothing parses.
func ParseJSONText(text string) (map[string]any, bool) {
	if doc, ok := decodeObject(text); ok {
		return doc, true
	}
	trimmed := strings.TrimSpace(text)
	if m := trailingObject.FindString(trimmed); m != "" {
		if doc, ok := decodeObject(m); ok {
			return doc, true
		}
	}
	unfenced := stripCodeFences(trimmed)
	start := strings.Index(unfenced, "{")
	end := strings.LastIndex(unfenced, "}")
	if start >= 0 && end > start {
		if doc, ok := decodeObject(unfenced[start : end+1]); ok {
			return doc, true
		}
	}
	return map[string]any{}, false
}

func decodeObject(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(s), &doc); err != nil || doc == nil {
		return nil, false
	}
	return doc, true
}

func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
