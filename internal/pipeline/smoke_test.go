package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"collex/internal/config"
	"collex/internal/source"
)

func TestSmokeExportToXLSX(t *testing.T) {
	env, err := source.LoadEnvelope(filepath.Join("testdata", "sample_export.json"))
	if err != nil {
		t.Fatal(err)
	}
	if env.Source != "design-collection" || len(env.Objects) != 3 {
		t.Fatalf("envelope: source=%q objects=%d", env.Source, len(env.Objects))
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	items := Enrich(NewNormalizer(cfg).NormalizeAll(env.Objects))
	if len(items) != 3 {
		t.Fatalf("items=%d", len(items))
	}

	chair := items[0]
	if chair.Creator == nil || *chair.Creator != "Charles Eames and Ray Eames" {
		t.Fatalf("creator: %v", chair.Creator)
	}
	if chair.Dimensions == nil || *chair.Dimensions != "H 26 in × W 21 in" {
		t.Fatalf("dimensions: %v", chair.Dimensions)
	}
	if len(chair.Flags) != 1 || !chair.Flags["onDisplay"] {
		t.Fatalf("flags: %+v", chair.Flags)
	}
	if chair.Related[0].Title != "Unknown Title" {
		t.Fatalf("resolved to the second record's fallback title: %+v", chair.Related[0])
	}
	if chair.Related[1].Title != "MISSING-99" {
		t.Fatalf("unresolved target: %+v", chair.Related[1])
	}

	second := items[1]
	if second.Title != "Unknown Title" || second.Creator != nil {
		t.Fatalf("second record: title=%q creator=%v", second.Title, second.Creator)
	}
	if second.Dimensions == nil || *second.Dimensions != "12 in diameter" {
		t.Fatalf("diameter synthesis: %v", second.Dimensions)
	}
	if second.InventoryLocation == nil || *second.InventoryLocation != "17" {
		t.Fatalf("inventory location: %v", second.InventoryLocation)
	}

	poster := items[2]
	if poster.ID != "3001" || poster.Title != "Exhibition Poster" || poster.Date != nil {
		t.Fatalf("poster: %+v", poster)
	}

	stats := BuildReport(env.Objects)
	foundSurprise := false
	for _, stat := range stats {
		if stat.Field == "surprise_field" && stat.Present == 1 {
			foundSurprise = true
		}
	}
	if !foundSurprise {
		t.Fatal("report missed the unknown field")
	}

	tmp := t.TempDir()
	out := filepath.Join(tmp, "items.xlsx")
	if err := ExportItemsToXLSX(items, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}

	reportOut := filepath.Join(tmp, "report.xlsx")
	if err := ExportReportToXLSX(stats, reportOut); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(reportOut); err != nil {
		t.Fatal(err)
	}
}
