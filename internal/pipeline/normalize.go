package pipeline

import (
	"strconv"
	"strings"

	"collex/internal"
	"collex/internal/config"
	"collex/internal/util"
)

// flagNames maps the export's underscore flag keys to their canonical
// names. Keys outside this set are dropped.
var flagNames = map[string]string{
	"possible_duplicate": "possibleDuplicate",
	"prototype":          "prototype",
	"on_display":         "onDisplay",
	"has_damage":         "hasDamage",
	"needs_conservation": "needsConservation",
	"public_domain":      "publicDomain",
}

// Normalizer collapses each raw field's observed shapes into exactly one
// canonical shape. Every rule is total and independent of the other
// fields: any shape outside the documented space coerces to absence, never
// to an error.
type Normalizer struct {
	titleFallback string
}

func NewNormalizer(cfg config.Config) *Normalizer {
	fallback := strings.TrimSpace(cfg.TitleFallback)
	if fallback == "" {
		fallback = "Unknown Title"
	}
	return &Normalizer{titleFallback: fallback}
}

func (n *Normalizer) NormalizeAll(records []internal.RawRecord) []internal.Item {
	out := make([]internal.Item, 0, len(records))
	for _, raw := range records {
		out = append(out, n.Normalize(raw))
	}
	return out
}

func (n *Normalizer) Normalize(raw internal.RawRecord) internal.Item {
	item := internal.Item{
		ID:         raw.ID.String(),
		ObjectType: raw.ObjectType,
		Department: raw.Department,
		Title:      n.titleFallback,

		Accession:     cleanPtr(raw.Accession),
		Description:   cleanPtr(raw.Description),
		Condition:     cleanPtr(raw.Condition),
		CreditLine:    cleanPtr(raw.CreditLine),
		Transcription: cleanPtr(raw.Transcription),
		Status:        cleanPtr(raw.Status),

		Creator:           normalizeCreator(raw.Creator),
		Date:              normalizeDate(raw.Date),
		Materials:         normalizeMaterials(raw.Materials),
		Dimensions:        normalizeDimensions(raw.Dimensions),
		Flags:             normalizeFlags(raw.Flags),
		Related:           normalizeRelated(raw.Related),
		ExternalIDs:       normalizeExternalIDs(raw.ExternalIDs),
		Rights:            normalizeRights(raw.Rights),
		Geography:         normalizeGeography(raw.Geography),
		Series:            normalizeSeries(raw.Series),
		Storage:           normalizeStorage(raw.Storage),
		Edition:           normalizeEdition(raw.Edition),
		InventoryLocation: scalarString(raw.InventoryLocation),

		Notes:      normalizeList(raw.Notes),
		Keywords:   normalizeList(raw.Keywords),
		Variants:   normalizeList(raw.Variants),
		Tags:       normalizeList(raw.Tags),
		Provenance: normalizeList(raw.Provenance),
	}

	if raw.Title != nil {
		if title := util.CleanString(*raw.Title); title != nil {
			item.Title = *title
		}
	}

	return item
}

// normalizeCreator joins list creators with " and " after dropping
// placeholder entries; a lone placeholder string collapses to absence.
func normalizeCreator(raw internal.TextOrList) *string {
	if raw.IsList() {
		kept := make([]string, 0, len(raw.List))
		for _, entry := range raw.List {
			if util.IsPlaceholder(entry) {
				continue
			}
			kept = append(kept, strings.TrimSpace(entry))
		}
		if len(kept) == 0 {
			return nil
		}
		return util.StringPtr(strings.Join(kept, " and "))
	}
	if raw.Str != nil {
		return util.CleanText(*raw.Str)
	}
	return nil
}

// normalizeMaterials is the creator rule without the placeholder filter:
// lists join with ", ", blank entries are dropped.
func normalizeMaterials(raw internal.TextOrList) *string {
	if raw.IsList() {
		kept := make([]string, 0, len(raw.List))
		for _, entry := range raw.List {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			kept = append(kept, entry)
		}
		if len(kept) == 0 {
			return nil
		}
		return util.StringPtr(strings.Join(kept, ", "))
	}
	if raw.Str != nil {
		return util.CleanString(*raw.Str)
	}
	return nil
}

// normalizeDate keeps the human-readable form and discards the numeric
// earliest/latest bounds the structured shape carries.
func normalizeDate(raw internal.RawDate) *string {
	switch {
	case raw.IsObject:
		if raw.Display == nil {
			return nil
		}
		return util.CleanText(*raw.Display)
	case raw.Num != nil:
		return util.StringPtr(strconv.FormatFloat(*raw.Num, 'f', -1, 64))
	case raw.Str != nil:
		return util.CleanText(*raw.Str)
	}
	return nil
}

func normalizeFlags(raw internal.RawFlags) map[string]bool {
	var out map[string]bool
	for name := range raw {
		canonical, known := flagNames[name]
		if !known {
			continue
		}
		if out == nil {
			out = map[string]bool{}
		}
		out[canonical] = true
	}
	return out
}

// normalizeRelated always yields an iterable slice; entries missing a kind
// or a target identifier are dropped. Titles stay empty until enrichment.
func normalizeRelated(raw []internal.RawRelation) []internal.Relation {
	out := make([]internal.Relation, 0, len(raw))
	for _, rel := range raw {
		if rel.Type == nil {
			continue
		}
		kind := strings.TrimSpace(*rel.Type)
		target := strings.TrimSpace(rel.ObjectID.String())
		if kind == "" || target == "" {
			continue
		}
		out = append(out, internal.Relation{Type: kind, ObjectID: target})
	}
	return out
}

func normalizeExternalIDs(raw map[string]string) map[string]string {
	var out map[string]string
	for key, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[key] = value
	}
	return out
}

func normalizeRights(raw internal.RawRights) *string {
	switch {
	case raw.Str != nil:
		return util.CleanString(*raw.Str)
	case raw.Status != nil:
		return util.CleanString(*raw.Status)
	}
	return nil
}

func normalizeGeography(raw internal.RawGeography) *internal.Geography {
	g := internal.Geography{
		Country: cleanPtr(raw.Country),
		City:    cleanPtr(raw.City),
	}
	if g.Country == nil && g.City == nil {
		return nil
	}
	return &g
}

func normalizeSeries(raw internal.RawSeries) *internal.Series {
	s := internal.Series{
		Name:     cleanPtr(raw.Name),
		Position: scalarString(raw.Position),
	}
	if s.Name == nil && s.Position == nil {
		return nil
	}
	return &s
}

func normalizeStorage(raw internal.RawStorage) *internal.Storage {
	s := internal.Storage{
		Building: cleanPtr(raw.Building),
		Shelf:    scalarString(raw.Shelf),
	}
	if s.Building == nil && s.Shelf == nil {
		return nil
	}
	return &s
}

func normalizeEdition(raw internal.RawEdition) *internal.Edition {
	e := internal.Edition{
		Number: scalarString(raw.Number),
		Size:   scalarString(raw.Size),
	}
	if e.Number == nil && e.Size == nil {
		return nil
	}
	return &e
}

// normalizeList passes non-empty sequences through with their element
// shapes intact.
func normalizeList(raw []any) []any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func cleanPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	return util.CleanString(*raw)
}

func scalarString(raw internal.RawScalar) *string {
	if raw.IsZero() {
		return nil
	}
	return util.CleanString(raw.String())
}
