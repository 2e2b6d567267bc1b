package pipeline

import (
	"encoding/json"
	"testing"

	"collex/internal"
	"collex/internal/config"
)

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	return NewNormalizer(cfg)
}

func rawFromJSON(t *testing.T, blob string) internal.RawRecord {
	t.Helper()
	var raw internal.RawRecord
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return raw
}

func normalizeJSON(t *testing.T, blob string) internal.Item {
	t.Helper()
	return testNormalizer(t).Normalize(rawFromJSON(t, blob))
}

func TestNormalizeIdentity(t *testing.T) {
	item := normalizeJSON(t, `{"id": 321, "type": "furniture", "department": "industrial design"}`)
	if item.ID != "321" || item.ObjectType != "furniture" || item.Department != "industrial design" {
		t.Fatalf("identity fields: %+v", item)
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		name string
		blob string
		want string
	}{
		{name: "present", blob: `{"title": "LCW Chair"}`, want: "LCW Chair"},
		{name: "padded", blob: `{"title": "  LCW Chair  "}`, want: "LCW Chair"},
		{name: "null", blob: `{"title": null}`, want: "Unknown Title"},
		{name: "missing", blob: `{}`, want: "Unknown Title"},
		{name: "blank", blob: `{"title": "   "}`, want: "Unknown Title"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if item := normalizeJSON(t, tc.blob); item.Title != tc.want {
				t.Fatalf("title=%q want %q", item.Title, tc.want)
			}
		})
	}
}

func TestNormalizeCreator(t *testing.T) {
	cases := []struct {
		name string
		blob string
		want *string
	}{
		{name: "pair joined", blob: `{"creator": ["Charles Eames", "Ray Eames"]}`, want: sp("Charles Eames and Ray Eames")},
		{name: "unknown entry filtered", blob: `{"creator": ["Unknown"]}`, want: nil},
		{name: "mixed entries", blob: `{"creator": ["Charles Eames", "unknown"]}`, want: sp("Charles Eames")},
		{name: "empty list", blob: `{"creator": []}`, want: nil},
		{name: "unknown string", blob: `{"creator": "Unknown"}`, want: nil},
		{name: "padded string", blob: `{"creator": "  Ray Eames  "}`, want: sp("Ray Eames")},
		{name: "null", blob: `{"creator": null}`, want: nil},
		{name: "wrong shape", blob: `{"creator": {"name": "Ray"}}`, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkOptional(t, normalizeJSON(t, tc.blob).Creator, tc.want)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		blob string
		want *string
	}{
		{name: "object display", blob: `{"date": {"display": "1945-1946", "earliest": 1945, "latest": 1946}}`, want: sp("1945-1946")},
		{name: "object unknown display", blob: `{"date": {"display": "Unknown"}}`, want: nil},
		{name: "object no display", blob: `{"date": {"earliest": 1945}}`, want: nil},
		{name: "number", blob: `{"date": 1900}`, want: sp("1900")},
		{name: "string", blob: `{"date": "c. 1946"}`, want: sp("c. 1946")},
		{name: "unknown string", blob: `{"date": "unknown"}`, want: nil},
		{name: "null", blob: `{"date": null}`, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkOptional(t, normalizeJSON(t, tc.blob).Date, tc.want)
		})
	}
}

func TestNormalizeMaterials(t *testing.T) {
	cases := []struct {
		name string
		blob string
		want *string
	}{
		{name: "list joined", blob: `{"materials": ["molded plywood", "rubber shock mounts"]}`, want: sp("molded plywood, rubber shock mounts")},
		{name: "empty list", blob: `{"materials": []}`, want: nil},
		{name: "string", blob: `{"materials": " steel "}`, want: sp("steel")},
		{name: "empty string", blob: `{"materials": ""}`, want: nil},
		{name: "null", blob: `{"materials": null}`, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkOptional(t, normalizeJSON(t, tc.blob).Materials, tc.want)
		})
	}
}

func TestNormalizeFlags(t *testing.T) {
	item := normalizeJSON(t, `{"flags": {"possible_duplicate": true, "prototype": false}}`)
	if len(item.Flags) != 1 || !item.Flags["possibleDuplicate"] {
		t.Fatalf("flags: %+v", item.Flags)
	}

	item = normalizeJSON(t, `{"flags": {"possible_duplicate": false}}`)
	if item.Flags != nil {
		t.Fatalf("no true entries should collapse to absence: %+v", item.Flags)
	}

	item = normalizeJSON(t, `{"flags": {"made_up_flag": true, "on_display": true}}`)
	if len(item.Flags) != 1 || !item.Flags["onDisplay"] {
		t.Fatalf("unknown keys should drop: %+v", item.Flags)
	}
}

func TestNormalizeRelated(t *testing.T) {
	item := normalizeJSON(t, `{"related": [
		{"type": "paired-with", "objectId": "A"},
		{"type": "part-of", "objectId": 12},
		{"objectId": "B"},
		{"type": "variant-of"}
	]}`)
	if len(item.Related) != 2 {
		t.Fatalf("len=%d: %+v", len(item.Related), item.Related)
	}
	if item.Related[0].ObjectID != "A" || item.Related[1].ObjectID != "12" {
		t.Fatalf("targets: %+v", item.Related)
	}
	if item.Related[0].Title != "" {
		t.Fatalf("title should be unset before enrichment: %+v", item.Related[0])
	}

	if item := normalizeJSON(t, `{"related": null}`); item.Related == nil || len(item.Related) != 0 {
		t.Fatalf("related must always be iterable: %+v", item.Related)
	}
	if item := normalizeJSON(t, `{}`); item.Related == nil {
		t.Fatal("missing related must still be iterable")
	}
}

func TestNormalizeExternalIDs(t *testing.T) {
	item := normalizeJSON(t, `{"external_ids": {"wikidata": "Q1234", "viaf": "", "ulan": null}}`)
	if len(item.ExternalIDs) != 1 || item.ExternalIDs["wikidata"] != "Q1234" {
		t.Fatalf("external ids: %+v", item.ExternalIDs)
	}

	if item := normalizeJSON(t, `{"external_ids": {"viaf": ""}}`); item.ExternalIDs != nil {
		t.Fatalf("all-empty should collapse to absence: %+v", item.ExternalIDs)
	}
}

func TestNormalizeRights(t *testing.T) {
	checkOptional(t, normalizeJSON(t, `{"rights": " Public Domain "}`).Rights, sp("Public Domain"))
	checkOptional(t, normalizeJSON(t, `{"rights": {"status": "copyrighted"}}`).Rights, sp("copyrighted"))
	checkOptional(t, normalizeJSON(t, `{"rights": 5}`).Rights, nil)
	checkOptional(t, normalizeJSON(t, `{"rights": null}`).Rights, nil)
}

func TestNormalizeSubObjects(t *testing.T) {
	item := normalizeJSON(t, `{
		"geography": {"country": "USA", "city": ""},
		"series": {"position": 3},
		"storage_location": {},
		"edition": {"number": "3", "size": 25}
	}`)
	if item.Geography == nil || item.Geography.Country == nil || *item.Geography.Country != "USA" || item.Geography.City != nil {
		t.Fatalf("geography: %+v", item.Geography)
	}
	if item.Series == nil || item.Series.Position == nil || *item.Series.Position != "3" || item.Series.Name != nil {
		t.Fatalf("series: %+v", item.Series)
	}
	if item.Storage != nil {
		t.Fatalf("empty storage should be absent: %+v", item.Storage)
	}
	if item.Edition == nil || *item.Edition.Number != "3" || *item.Edition.Size != "25" {
		t.Fatalf("edition: %+v", item.Edition)
	}
}

func TestNormalizeLists(t *testing.T) {
	item := normalizeJSON(t, `{"notes": ["a note", {"kind": "structured"}], "keywords": [], "tags": null}`)
	if len(item.Notes) != 2 {
		t.Fatalf("notes: %+v", item.Notes)
	}
	if _, ok := item.Notes[1].(map[string]any); !ok {
		t.Fatalf("element shape should be preserved: %+v", item.Notes[1])
	}
	if item.Keywords != nil || item.Tags != nil {
		t.Fatalf("empty lists should be absent: %+v %+v", item.Keywords, item.Tags)
	}
}

func TestNormalizeInventoryLocation(t *testing.T) {
	checkOptional(t, normalizeJSON(t, `{"inventory_location": "Aisle 4"}`).InventoryLocation, sp("Aisle 4"))
	checkOptional(t, normalizeJSON(t, `{"inventory_location": 17}`).InventoryLocation, sp("17"))
	checkOptional(t, normalizeJSON(t, `{"inventory_location": null}`).InventoryLocation, nil)
}

func TestNormalizePlainStrings(t *testing.T) {
	item := normalizeJSON(t, `{
		"accession_number": " 1946-12-1 ",
		"description": "",
		"condition": null,
		"credit_line": "Gift of the designer"
	}`)
	checkOptional(t, item.Accession, sp("1946-12-1"))
	checkOptional(t, item.Description, nil)
	checkOptional(t, item.Condition, nil)
	checkOptional(t, item.CreditLine, sp("Gift of the designer"))
}

// Normalizing a fully absent record, then normalizing its canonical output
// as if it were raw input, must stay absent.
func TestNormalizeAbsenceIdempotent(t *testing.T) {
	n := testNormalizer(t)

	first := n.Normalize(rawFromJSON(t, `{"id": "A", "type": "poster", "department": "graphics"}`))
	blob, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}

	second := n.Normalize(rawFromJSON(t, string(blob)))
	if second.Creator != nil || second.Date != nil || second.Materials != nil ||
		second.Dimensions != nil || second.Flags != nil || second.Rights != nil ||
		second.Geography != nil || second.Notes != nil {
		t.Fatalf("absence should survive a round trip: %+v", second)
	}
	if len(second.Related) != 0 {
		t.Fatalf("related: %+v", second.Related)
	}
}

func TestNormalizeTotality(t *testing.T) {
	blobs := []string{
		`{}`,
		`null`,
		`"scalar record"`,
		`{"id": [1], "creator": 9, "date": [], "dimensions": 4, "flags": [true], "related": {}, "rights": [], "notes": "x"}`,
	}
	n := testNormalizer(t)
	for _, blob := range blobs {
		item := n.Normalize(rawFromJSON(t, blob))
		if item.Title == "" {
			t.Fatalf("title must never be empty for %s", blob)
		}
		if item.Related == nil {
			t.Fatalf("related must never be nil for %s", blob)
		}
	}
}

func checkOptional(t *testing.T, got, want *string) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Fatalf("expected absence, got %q", *got)
	case want != nil && got == nil:
		t.Fatalf("expected %q, got absence", *want)
	case want != nil && *got != *want:
		t.Fatalf("got %q want %q", *got, *want)
	}
}

func sp(v string) *string { return &v }
