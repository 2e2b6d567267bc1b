package pipeline

import (
	"strings"

	"collex/internal"
	"collex/internal/util"
)

// normalizeDimensions prefers the export's own display string; when that is
// missing or a placeholder it synthesizes one from the structured
// sub-fields. Height, width, depth and length render label-first ("H 26 in"),
// diameter and wingspan render unit-last ("12 in diameter"). Parts are
// joined in that fixed order.
func normalizeDimensions(raw internal.RawDimensions) *string {
	if !raw.Present {
		return nil
	}
	if raw.Display != nil && !util.IsPlaceholder(*raw.Display) {
		return util.CleanString(*raw.Display)
	}

	defaultUnit := ""
	if raw.Unit != nil {
		defaultUnit = strings.TrimSpace(*raw.Unit)
	}

	parts := make([]string, 0, 6)
	labeled := func(label string, v *internal.DimValue) {
		if v == nil {
			return
		}
		if rendered := renderDimValue(*v, defaultUnit); rendered != "" {
			parts = appendDimPart(parts, label+" "+rendered)
		}
	}
	suffixed := func(v *internal.DimValue, suffix string) {
		if v == nil {
			return
		}
		if rendered := renderDimValue(*v, defaultUnit); rendered != "" {
			parts = appendDimPart(parts, rendered+" "+suffix)
		}
	}

	labeled("H", raw.H)
	labeled("W", raw.W)
	labeled("D", raw.D)
	labeled("L", raw.L)
	suffixed(raw.Diameter, "diameter")
	suffixed(raw.Wingspan, "wingspan")

	if len(parts) == 0 {
		return nil
	}
	return util.StringPtr(strings.Join(parts, " × "))
}

// appendDimPart drops any part still carrying a literal "?", the export's
// placeholder for measurements nobody took.
func appendDimPart(parts []string, part string) []string {
	if strings.Contains(part, "?") {
		return parts
	}
	return append(parts, part)
}

// renderDimValue renders one measurement. A {value, unit} pair and a bare
// number pick up the record's default unit when they carry none; a bare
// string renders as itself.
func renderDimValue(v internal.DimValue, defaultUnit string) string {
	switch {
	case v.Pair != nil:
		if v.Pair.Value == nil {
			return ""
		}
		value := strings.TrimSpace(v.Pair.Value.String())
		if value == "" {
			return ""
		}
		unit := defaultUnit
		if v.Pair.Unit != nil && strings.TrimSpace(*v.Pair.Unit) != "" {
			unit = strings.TrimSpace(*v.Pair.Unit)
		}
		if unit == "" {
			return value
		}
		return value + " " + unit
	case v.Scalar != nil:
		if v.Scalar.Num != nil {
			value := v.Scalar.String()
			if defaultUnit != "" {
				return value + " " + defaultUnit
			}
			return value
		}
		return strings.TrimSpace(v.Scalar.String())
	}
	return ""
}
