package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"collex/internal"
)

// ExportItemsToXLSX writes one row per canonical item. Collection-valued
// fields are flattened into readable cells; absent fields stay blank.
func ExportItemsToXLSX(items []internal.Item, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"id", "type", "department", "title",
		"creator", "date", "materials", "dimensions",
		"accession_number", "description", "condition", "credit_line",
		"transcription", "status", "rights", "inventory_location",
		"flags", "related", "external_ids",
		"geography", "series", "storage_location", "edition",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, item.ID)
		set(2, item.ObjectType)
		set(3, item.Department)
		set(4, item.Title)
		set(5, derefString(item.Creator))
		set(6, derefString(item.Date))
		set(7, derefString(item.Materials))
		set(8, derefString(item.Dimensions))
		set(9, derefString(item.Accession))
		set(10, derefString(item.Description))
		set(11, derefString(item.Condition))
		set(12, derefString(item.CreditLine))
		set(13, derefString(item.Transcription))
		set(14, derefString(item.Status))
		set(15, derefString(item.Rights))
		set(16, derefString(item.InventoryLocation))
		set(17, joinFlags(item.Flags))
		set(18, joinRelated(item.Related))
		set(19, joinExternalIDs(item.ExternalIDs))
		if item.Geography != nil {
			set(20, joinPair(item.Geography.Country, item.Geography.City))
		}
		if item.Series != nil {
			set(21, joinPair(item.Series.Name, item.Series.Position))
		}
		if item.Storage != nil {
			set(22, joinPair(item.Storage.Building, item.Storage.Shelf))
		}
		if item.Edition != nil {
			set(23, joinPair(item.Edition.Number, item.Edition.Size))
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ExportReportToXLSX writes the field statistics report.
func ExportReportToXLSX(stats []FieldStat, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range []string{"field", "present", "missing", "shapes"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, stat := range stats {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		shapes := make([]string, 0, len(stat.Shapes))
		for shape, count := range stat.Shapes {
			shapes = append(shapes, fmt.Sprintf("%s=%d", shape, count))
		}
		sort.Strings(shapes)

		set(1, stat.Field)
		set(2, stat.Present)
		set(3, stat.Missing)
		set(4, strings.Join(shapes, " "))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func joinFlags(flags map[string]bool) string {
	if len(flags) == 0 {
		return ""
	}
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func joinRelated(related []internal.Relation) string {
	parts := make([]string, 0, len(related))
	for _, rel := range related {
		parts = append(parts, fmt.Sprintf("%s:%s (%s)", rel.Type, rel.ObjectID, rel.Title))
	}
	return strings.Join(parts, "; ")
}

func joinExternalIDs(ids map[string]string) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for key, value := range ids {
		parts = append(parts, key+"="+value)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func joinPair(first, second *string) string {
	parts := make([]string, 0, 2)
	if first != nil {
		parts = append(parts, *first)
	}
	if second != nil {
		parts = append(parts, *second)
	}
	return strings.Join(parts, ", ")
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
