// Command report merges CO2 emission, GDP and population datasets and
// prints their ranked statistical summaries.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"carboncli/internal/config"
	apperrors "carboncli/internal/errors"
	"carboncli/internal/exporter"
	"carboncli/internal/infrastructure"
	"carboncli/internal/loader"
	"carboncli/internal/merge"
	"carboncli/internal/stats"
	"carboncli/pkg/contracts/domain"
)

func main() {
	emissionsFile := flag.String("emissions", "", "path to the CO2 emissions file (csv or xlsx)")
	gdpFile := flag.String("gdp", "", "path to the GDP file (csv or xlsx)")
	populationFile := flag.String("population", "", "path to the population file (csv or xlsx)")
	startYear := flag.Int("start", 0, "inclusive lower bound of the year range")
	endYear := flag.Int("end", 0, "inclusive upper bound of the year range")
	mode := flag.String("mode", "plain", "display mode: plain | pretty")
	outDir := flag.String("out", "", "also write the result tables as CSV reports into this directory")
	aliasFile := flag.String("aliases", "", "YAML file extending the built-in country alias table")
	flag.Parse()

	if *emissionsFile == "" || *gdpFile == "" || *populationFile == "" {
		fmt.Fprintln(os.Stderr, "flags -emissions, -gdp and -population are required")
		flag.Usage()
		os.Exit(2)
	}
	if (*startYear == 0) != (*endYear == 0) {
		fmt.Fprintln(os.Stderr, "flags -start and -end must be given together")
		os.Exit(2)
	}
	displayMode, err := exporter.ParseDisplayMode(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	if *aliasFile == "" {
		*aliasFile = cfg.Aliases.File
	}
	aliases, err := config.LoadAliasTable(*aliasFile)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load alias table",
			slog.String("file", *aliasFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Starting emission statistics run",
		slog.String("emissions_file", *emissionsFile),
		slog.String("gdp_file", *gdpFile),
		slog.String("population_file", *populationFile),
		slog.Int("start_year", *startYear),
		slog.Int("end_year", *endYear),
		slog.Int("alias_entries", aliases.Len()))

	sources := []loader.Source{
		{Name: "emissions", Metric: domain.MetricEmissions, Path: *emissionsFile, Scale: 1000},
		{Name: "gdp", Metric: domain.MetricGDP, Path: *gdpFile},
		{Name: "population", Metric: domain.MetricPopulation, Path: *populationFile},
	}

	loaded := make(map[domain.Metric][]domain.RawRecord, len(sources))
	for _, src := range sources {
		records, err := loader.Load(ctx, src, aliases)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to load source",
				slog.String("source", src.Name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		loaded[src.Metric] = records
	}

	records := merge.Merge(ctx, merge.Inputs{
		Emissions:  loaded[domain.MetricEmissions],
		GDP:        loaded[domain.MetricGDP],
		Population: loaded[domain.MetricPopulation],
	}, aliases, merge.Options{StartYear: *startYear, EndYear: *endYear})

	if len(records) == 0 && *startYear != 0 {
		logger.WarnContext(ctx, "Requested year range matches no records",
			slog.String("warning", apperrors.NewEmptyRangeError(*startYear, *endYear).Error()))
	}

	results, err := stats.New(logger, cfg.Stats).Compute(ctx, records)
	if err != nil && !errors.Is(err, apperrors.ErrInsufficientHistory) {
		logger.ErrorContext(ctx, "Failed to compute statistics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	trendFailed := errors.Is(err, apperrors.ErrInsufficientHistory)

	renderer := exporter.NewRenderer(os.Stdout, displayMode)
	renderer.RenderRankings("Top emissions per capita by year [metric tons per capita]", results.EmissionsTop)
	renderer.RenderRankings("Top GDP per capita by year [current US$ per capita]", results.GDPTop)
	if trendFailed {
		fmt.Fprintln(os.Stdout, "\nDecade emission change tables are not available: no data a decade before the most recent year.")
	} else {
		renderer.RenderTrends(
			fmt.Sprintf("Largest emission increases per capita, %d vs %d", results.ReferenceYear, results.ReferenceYear-cfg.Stats.DecadeOffset),
			results.TrendIncrease)
		renderer.RenderTrends(
			fmt.Sprintf("Largest emission decreases per capita, %d vs %d", results.ReferenceYear, results.ReferenceYear-cfg.Stats.DecadeOffset),
			results.TrendDecrease)
	}

	if *outDir != "" {
		writer := exporter.NewCSVWriter(*outDir)
		fail := func(name string, err error) {
			if err != nil {
				logger.ErrorContext(ctx, "Failed to write report",
					slog.String("report", name),
					slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		fail("emissions_top.csv", writer.WriteRankings("emissions_top.csv", results.EmissionsTop))
		fail("gdp_top.csv", writer.WriteRankings("gdp_top.csv", results.GDPTop))
		if !trendFailed {
			fail("trend_increase.csv", writer.WriteTrends("trend_increase.csv", results.TrendIncrease))
			fail("trend_decrease.csv", writer.WriteTrends("trend_decrease.csv", results.TrendDecrease))
		}
	}

	logger.InfoContext(ctx, "Run completed",
		slog.Int("merged_records", len(records)),
		slog.Bool("trend_available", !trendFailed))
}
