package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"collex/internal"
)

// FieldStat summarizes one raw field across a batch: how often it carried a
// value and which JSON shapes it showed up as.
type FieldStat struct {
	Field   string
	Present int
	Missing int
	Shapes  map[string]int
}

// knownFields is the documented raw field list; the report also picks up
// any key outside it, which is how new export shapes get noticed.
var knownFields = []string{
	"id", "type", "department", "title", "accession_number",
	"creator", "date", "materials", "dimensions", "flags", "related",
	"external_ids", "rights", "geography", "series", "storage_location",
	"edition", "inventory_location", "description", "condition",
	"credit_line", "transcription", "status",
	"notes", "keywords", "variants", "tags", "provenance",
}

// BuildReport tallies field presence over the undecoded field maps, never
// the normalizer's output. A JSON null counts as missing.
func BuildReport(records []internal.RawRecord) []FieldStat {
	names := map[string]struct{}{}
	for _, name := range knownFields {
		names[name] = struct{}{}
	}
	for _, record := range records {
		for name := range record.Fields {
			names[name] = struct{}{}
		}
	}

	out := make([]FieldStat, 0, len(names))
	for name := range names {
		stat := FieldStat{Field: name, Shapes: map[string]int{}}
		for _, record := range records {
			value, ok := record.Fields[name]
			if !ok || jsonShape(value) == "null" {
				stat.Missing++
				continue
			}
			stat.Present++
			stat.Shapes[jsonShape(value)]++
		}
		out = append(out, stat)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// jsonShape classifies a raw JSON value by its first byte.
func jsonShape(value json.RawMessage) string {
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "" {
		return "null"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// ReportLines renders one line per field for terminal output, listing at
// most maxShapes shape tallies per field.
func ReportLines(stats []FieldStat, maxShapes int) []string {
	lines := make([]string, 0, len(stats))
	for _, stat := range stats {
		shapes := make([]string, 0, len(stat.Shapes))
		for shape, count := range stat.Shapes {
			shapes = append(shapes, fmt.Sprintf("%s=%d", shape, count))
		}
		sort.Strings(shapes)
		if maxShapes > 0 && len(shapes) > maxShapes {
			shapes = append(shapes[:maxShapes], "...")
		}
		line := fmt.Sprintf("%-20s present=%-5d missing=%-5d %s",
			stat.Field, stat.Present, stat.Missing, strings.Join(shapes, " "))
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}
