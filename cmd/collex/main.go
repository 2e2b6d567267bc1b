package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"collex/internal"
	"collex/internal/config"
	"collex/internal/logger"
	"collex/internal/pipeline"
	"collex/internal/source"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "normalize":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "export json path")
		out := fs.String("out", "", "output xlsx path")
		jsonOut := fs.String("json", "", "optional output json path")
		_ = fs.Parse(os.Args[2:])
		if *input == "" {
			must(fmt.Errorf("--input is required"))
		}
		if *out == "" && *jsonOut == "" {
			*out = filepath.Join(cfg.OutputDir, "items.xlsx")
		}

		start := time.Now()
		env, err := source.LoadEnvelope(*input)
		must(err)
		items := pipeline.Enrich(pipeline.NewNormalizer(cfg).NormalizeAll(env.Objects))

		resolved, unresolved := relationCounts(items)
		log.Info().
			Str("run", runID()).
			Str("source", env.Source).
			Str("exported_at", env.ExportedAt).
			Int("records", len(items)).
			Int("relations_resolved", resolved).
			Int("relations_unresolved", unresolved).
			Dur("took", time.Since(start)).
			Msg("normalized export")

		if *out != "" {
			must(pipeline.ExportItemsToXLSX(items, *out))
			fmt.Printf("normalize done records=%d output=%s\n", len(items), *out)
		}
		if *jsonOut != "" {
			must(writeItemsJSON(items, *jsonOut))
			fmt.Printf("normalize done records=%d output=%s\n", len(items), *jsonOut)
		}
	case "report":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "export json path")
		out := fs.String("out", "", "optional output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *input == "" {
			must(fmt.Errorf("--input is required"))
		}

		env, err := source.LoadEnvelope(*input)
		must(err)
		stats := pipeline.BuildReport(env.Objects)

		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportReportToXLSX(stats, *out))
			fmt.Printf("report done fields=%d output=%s\n", len(stats), *out)
			return
		}
		fmt.Printf("source=%s exported_at=%s records=%d\n", env.Source, env.ExportedAt, len(env.Objects))
		for _, line := range pipeline.ReportLines(stats, cfg.ReportMaxShapes) {
			fmt.Println(line)
		}
	case "show":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "export json path")
		id := fs.String("id", "", "record identifier")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || strings.TrimSpace(*id) == "" {
			must(fmt.Errorf("--input and --id are required"))
		}

		env, err := source.LoadEnvelope(*input)
		must(err)
		items := pipeline.Enrich(pipeline.NewNormalizer(cfg).NormalizeAll(env.Objects))
		for _, item := range items {
			if item.ID == *id {
				blob, err := json.MarshalIndent(item, "", "  ")
				must(err)
				fmt.Println(string(blob))
				return
			}
		}
		must(fmt.Errorf("no record with id=%s", *id))
	default:
		usage()
		os.Exit(1)
	}
}

func relationCounts(items []internal.Item) (resolved, unresolved int) {
	for _, item := range items {
		for _, rel := range item.Related {
			if rel.Title == rel.ObjectID {
				unresolved++
			} else {
				resolved++
			}
		}
	}
	return resolved, unresolved
}

func writeItemsJSON(items []internal.Item, outputPath string) error {
	blob, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, blob, 0o644)
}

func runID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

func usage() {
	fmt.Println("usage: collex <command>")
	fmt.Println("commands:")
	fmt.Println("  normalize --input=export.json [--out=items.xlsx] [--json=items.json]")
	fmt.Println("  report --input=export.json [--out=report.xlsx]")
	fmt.Println("  show --input=export.json --id=123")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
