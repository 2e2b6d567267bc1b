package internal

import (
	"encoding/json"
	"strconv"
)

// RawRecord is one untransformed catalog entry. The export is inconsistent
// about field shapes, so every polymorphic field decodes through a tolerant
// union type: a shape outside the documented space becomes the zero value
// instead of an error. Decoding a RawRecord never fails.
//
// Keys the decoder does not recognize land in Extra so new export shapes
// stay visible to the field report without widening the known field list.
type RawRecord struct {
	ID         RawScalar
	ObjectType string
	Department string

	Title         *string
	Accession     *string
	Description   *string
	Condition     *string
	CreditLine    *string
	Transcription *string
	Status        *string

	Creator           TextOrList
	Date              RawDate
	Materials         TextOrList
	Dimensions        RawDimensions
	Flags             RawFlags
	Related           []RawRelation
	ExternalIDs       map[string]string
	Rights            RawRights
	Geography         RawGeography
	Series            RawSeries
	Storage           RawStorage
	Edition           RawEdition
	InventoryLocation RawScalar

	Notes      []any
	Keywords   []any
	Variants   []any
	Tags       []any
	Provenance []any

	Extra map[string]any

	// Fields keeps the undecoded JSON value per key for diagnostics.
	Fields map[string]json.RawMessage
}

// UnmarshalJSON dispatches each known key through its union decoder and
// collects the rest into Extra. It returns nil for any JSON value: a
// non-object record decodes to the zero RawRecord.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	r.Fields = fields

	for key, value := range fields {
		switch key {
		case "id":
			r.ID = decodeScalar(value)
		case "type":
			if s := decodeString(value); s != nil {
				r.ObjectType = *s
			}
		case "department":
			if s := decodeString(value); s != nil {
				r.Department = *s
			}
		case "title":
			r.Title = decodeString(value)
		case "accession_number":
			r.Accession = decodeString(value)
		case "description":
			r.Description = decodeString(value)
		case "condition":
			r.Condition = decodeString(value)
		case "credit_line":
			r.CreditLine = decodeString(value)
		case "transcription":
			r.Transcription = decodeString(value)
		case "status":
			r.Status = decodeString(value)
		case "creator":
			r.Creator = decodeTextOrList(value)
		case "date":
			r.Date = decodeDate(value)
		case "materials":
			r.Materials = decodeTextOrList(value)
		case "dimensions":
			r.Dimensions = decodeDimensions(value)
		case "flags":
			r.Flags = decodeFlags(value)
		case "related":
			r.Related = decodeRelations(value)
		case "external_ids":
			r.ExternalIDs = decodeStringMap(value)
		case "rights":
			r.Rights = decodeRights(value)
		case "geography":
			_ = tryObject(value, &r.Geography)
		case "series":
			_ = tryObject(value, &r.Series)
		case "storage_location":
			_ = tryObject(value, &r.Storage)
		case "edition":
			_ = tryObject(value, &r.Edition)
		case "inventory_location":
			r.InventoryLocation = decodeScalar(value)
		case "notes":
			r.Notes = decodeList(value)
		case "keywords":
			r.Keywords = decodeList(value)
		case "variants":
			r.Variants = decodeList(value)
		case "tags":
			r.Tags = decodeList(value)
		case "provenance":
			r.Provenance = decodeList(value)
		default:
			var v any
			if err := json.Unmarshal(value, &v); err == nil {
				if r.Extra == nil {
					r.Extra = map[string]any{}
				}
				r.Extra[key] = v
			}
		}
	}
	return nil
}

// RawScalar is a string-or-number value. Numbers keep their decimal form.
type RawScalar struct {
	Str *string
	Num *float64
}

func (s RawScalar) IsZero() bool {
	return s.Str == nil && s.Num == nil
}

func (s RawScalar) String() string {
	switch {
	case s.Num != nil:
		return strconv.FormatFloat(*s.Num, 'f', -1, 64)
	case s.Str != nil:
		return *s.Str
	}
	return ""
}

// TextOrList is a field observed both as a single string and as a list of
// strings. At most one side is set.
type TextOrList struct {
	Str  *string
	List []string
}

// IsList reports whether the raw value was a sequence, including an empty
// one.
func (t TextOrList) IsList() bool { return t.List != nil }

// RawDate is null, a number, a string, or an object with a display string
// and optional year bounds.
type RawDate struct {
	Display  *string
	Earliest *float64
	Latest   *float64
	Str      *string
	Num      *float64
	IsObject bool
}

// DimPair is the structured {value, unit} dimension form.
type DimPair struct {
	Value *RawScalar
	Unit  *string
}

// DimValue is one dimension sub-field: a bare number, a bare string, or a
// {value, unit} pair.
type DimValue struct {
	Scalar *RawScalar
	Pair   *DimPair
}

// RawDimensions is the open dimensions object. Present distinguishes a
// decoded object (possibly empty) from null or a non-object shape.
type RawDimensions struct {
	Present  bool
	Display  *string
	Unit     *string
	H        *DimValue
	W        *DimValue
	D        *DimValue
	L        *DimValue
	Diameter *DimValue
	Wingspan *DimValue
}

// RawFlags keeps only the entries whose raw value was exactly boolean true.
type RawFlags map[string]bool

type RawRelation struct {
	Type     *string
	ObjectID RawScalar
}

type RawRights struct {
	Str    *string
	Status *string
}

type RawGeography struct {
	Country *string `json:"country"`
	City    *string `json:"city"`
}

type RawSeries struct {
	Name     *string   `json:"name"`
	Position RawScalar `json:"position"`
}

type RawStorage struct {
	Building *string   `json:"building"`
	Shelf    RawScalar `json:"shelf"`
}

type RawEdition struct {
	Number RawScalar `json:"number"`
	Size   RawScalar `json:"size"`
}

func (s *RawScalar) UnmarshalJSON(data []byte) error {
	*s = decodeScalar(data)
	return nil
}

// json.Unmarshal treats a JSON null as a no-op rather than an error, so
// every decoder below checks for null explicitly.
func isNull(data json.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}

func decodeString(data json.RawMessage) *string {
	if isNull(data) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

func decodeScalar(data json.RawMessage) RawScalar {
	if isNull(data) {
		return RawScalar{}
	}
	if s := decodeString(data); s != nil {
		return RawScalar{Str: s}
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return RawScalar{Num: &n}
	}
	return RawScalar{}
}

func decodeTextOrList(data json.RawMessage) TextOrList {
	if s := decodeString(data); s != nil {
		return TextOrList{Str: s}
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil && list != nil {
		return TextOrList{List: list}
	}
	return TextOrList{}
}

func decodeDate(data json.RawMessage) RawDate {
	if isNull(data) {
		return RawDate{}
	}
	if s := decodeString(data); s != nil {
		return RawDate{Str: s}
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return RawDate{Num: &n}
	}
	var obj struct {
		Display  *string  `json:"display"`
		Earliest *float64 `json:"earliest"`
		Latest   *float64 `json:"latest"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return RawDate{Display: obj.Display, Earliest: obj.Earliest, Latest: obj.Latest, IsObject: true}
	}
	return RawDate{}
}

func decodeDimValue(data json.RawMessage) *DimValue {
	if isNull(data) {
		return nil
	}
	var pair struct {
		Value json.RawMessage `json:"value"`
		Unit  *string         `json:"unit"`
	}
	if err := json.Unmarshal(data, &pair); err == nil {
		p := DimPair{Unit: pair.Unit}
		if pair.Value != nil {
			v := decodeScalar(pair.Value)
			if !v.IsZero() {
				p.Value = &v
			}
		}
		return &DimValue{Pair: &p}
	}
	if v := decodeScalar(data); !v.IsZero() {
		return &DimValue{Scalar: &v}
	}
	return nil
}

func decodeDimensions(data json.RawMessage) RawDimensions {
	if isNull(data) {
		return RawDimensions{}
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return RawDimensions{}
	}
	d := RawDimensions{Present: true}
	for key, value := range fields {
		switch key {
		case "display":
			d.Display = decodeString(value)
		case "unit":
			d.Unit = decodeString(value)
		case "h":
			d.H = decodeDimValue(value)
		case "w":
			d.W = decodeDimValue(value)
		case "d":
			d.D = decodeDimValue(value)
		case "l":
			d.L = decodeDimValue(value)
		case "diameter":
			d.Diameter = decodeDimValue(value)
		case "wingspan":
			d.Wingspan = decodeDimValue(value)
		}
	}
	return d
}

func decodeFlags(data json.RawMessage) RawFlags {
	if isNull(data) {
		return nil
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	out := RawFlags{}
	for key, value := range fields {
		var b bool
		if err := json.Unmarshal(value, &b); err == nil && b {
			out[key] = true
		}
	}
	return out
}

func decodeRelations(data json.RawMessage) []RawRelation {
	if isNull(data) {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	out := make([]RawRelation, 0, len(entries))
	for _, entry := range entries {
		var rel struct {
			Type     *string         `json:"type"`
			ObjectID json.RawMessage `json:"objectId"`
		}
		if err := json.Unmarshal(entry, &rel); err != nil {
			continue
		}
		raw := RawRelation{Type: rel.Type}
		if rel.ObjectID != nil {
			raw.ObjectID = decodeScalar(rel.ObjectID)
		}
		out = append(out, raw)
	}
	return out
}

func decodeStringMap(data json.RawMessage) map[string]string {
	if isNull(data) {
		return nil
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	out := map[string]string{}
	for key, value := range fields {
		if s := decodeString(value); s != nil {
			out[key] = *s
		}
	}
	return out
}

func decodeRights(data json.RawMessage) RawRights {
	if s := decodeString(data); s != nil {
		return RawRights{Str: s}
	}
	var obj struct {
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return RawRights{Status: obj.Status}
	}
	return RawRights{}
}

func decodeList(data json.RawMessage) []any {
	var list []any
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	return list
}

func tryObject(data json.RawMessage, target any) bool {
	if isNull(data) {
		return false
	}
	return json.Unmarshal(data, target) == nil
}
