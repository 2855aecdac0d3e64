package extraction

var idFields = map[string]string{
	"timeline": "event_id",
	"evidence": "evidence_id",
}

// NormalizeIDs drops non-object entries from the timeline and evidence lists
// and overwrites each surviving id with its 0-based position. Values that
// are not lists are left untouched. doc is modified in place and returned.
func NormalizeIDs(doc map[string]any) map[string]any {
	if doc == nil {
		return doc
	}
	for listKey, idKey := range idFields {
		items, ok := doc[listKey].([]any)
		if !ok {
			continue
		}
		kept := make([]any, 0, len(items))
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			obj[idKey] = len(kept)
			kept = append(kept, obj)
		}
		doc[listKey] = kept
	}
	return doc
}
