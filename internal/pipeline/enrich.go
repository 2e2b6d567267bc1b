package pipeline

import "collex/internal"

// Enrich resolves every relation's title against an id→title index built
// from the whole batch. Unresolved targets fall back to the raw identifier,
// so no title slot is ever left empty. The input is not mutated: the
// returned items carry freshly built relation slices.
//
// The index lives and dies inside this one call; any record may reference
// any other, so the batch must be fully normalized before enrichment runs.
func Enrich(items []internal.Item) []internal.Item {
	index := make(map[string]string, len(items))
	for _, item := range items {
		index[item.ID] = item.Title
	}

	out := make([]internal.Item, len(items))
	for i, item := range items {
		related := make([]internal.Relation, len(item.Related))
		for j, rel := range item.Related {
			if title, ok := index[rel.ObjectID]; ok {
				rel.Title = title
			} else {
				rel.Title = rel.ObjectID
			}
			related[j] = rel
		}
		item.Related = related
		out[i] = item
	}
	return out
}
