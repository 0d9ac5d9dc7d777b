// cmd/ops/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/floritflats/opsboard/internal/masters"
	"github.com/floritflats/opsboard/internal/replenish"
	"github.com/floritflats/opsboard/internal/service"
	"github.com/floritflats/opsboard/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "ops",
		Usage: "Generate the daily operativa workbook from raw exports",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the pipeline once and write the workbook to disk",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "avantio",
						Usage:    "Path to the reservations export (xls/xlsx/csv)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "stock",
						Usage:    "Path to the warehouse stock export (xlsx/csv)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "masters-dir",
						Usage:   "Directory holding the master tables",
						Value:   "./data/maestros",
						EnvVars: []string{"APP_MASTERS_DIR"},
					},
					&cli.StringFlag{
						Name:  "start",
						Usage: "First day of the window (YYYY-MM-DD, default today)",
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of days to project",
						Value: 3,
					},
					&cli.StringFlag{
						Name:    "objective",
						Usage:   "Replenishment target: max or min",
						Value:   "max",
						EnvVars: []string{"APP_DEFAULT_OBJECTIVE"},
					},
					&cli.StringFlag{
						Name:    "timezone",
						Usage:   "IANA timezone for the default window start",
						Value:   "Europe/Madrid",
						EnvVars: []string{"APP_TIMEZONE"},
					},
					&cli.BoolFlag{
						Name:  "urgent-only",
						Usage: "List only amenities below their minimum",
					},
					&cli.StringFlag{
						Name:    "out-dir",
						Usage:   "Directory to write the workbook into",
						Value:   "./data/output",
						EnvVars: []string{"APP_OUTPUT_DIR"},
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level (debug, info, warn, error)",
						Value:   "info",
						EnvVars: []string{"APP_LOG_LEVEL"},
					},
				},
				Action: runPipeline,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runPipeline(c *cli.Context) error {
	logger.SetLevel(c.String("log-level"))

	avantioPath := c.String("avantio")
	avantio, err := os.ReadFile(avantioPath)
	if err != nil {
		return fmt.Errorf("failed to read reservations export: %w", err)
	}
	stockPath := c.String("stock")
	stock, err := os.ReadFile(stockPath)
	if err != nil {
		return fmt.Errorf("failed to read stock export: %w", err)
	}

	m, err := masters.Load(c.String("masters-dir"))
	if err != nil {
		return fmt.Errorf("failed to load master tables: %w", err)
	}

	var start time.Time
	if raw := c.String("start"); raw != "" {
		start, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("invalid --start, expected YYYY-MM-DD: %w", err)
		}
	}

	objective := replenish.Objective(c.String("objective"))
	if objective != replenish.ObjectiveMax && objective != replenish.ObjectiveMin {
		return fmt.Errorf("invalid --objective %q, expected max or min", c.String("objective"))
	}

	loc, err := time.LoadLocation(c.String("timezone"))
	if err != nil {
		return fmt.Errorf("invalid --timezone %q: %w", c.String("timezone"), err)
	}

	svc := service.NewReportService(m, nil, nil, loc)
	report, workbook, err := svc.Generate(c.Context, service.ReportInput{
		AvantioName: filepath.Base(avantioPath),
		Avantio:     avantio,
		StockName:   filepath.Base(stockPath),
		Stock:       stock,
		Start:       start,
		Days:        c.Int("days"),
		Objective:   objective,
		UrgentOnly:  c.Bool("urgent-only"),
	})
	if err != nil {
		return err
	}

	outDir := c.String("out-dir")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(outDir, report.WorkbookName)
	if err := os.WriteFile(outPath, workbook, 0644); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Log.Info().
		Str("workbook", outPath).
		Int("operativa_rows", len(report.Operativa)).
		Int("unclassified", len(report.Unclassified)).
		Int("entradas", report.KPIs.Entradas).
		Int("salidas", report.KPIs.Salidas).
		Int("turnovers", report.KPIs.Turnovers).
		Msg("Pipeline complete")

	return nil
}
