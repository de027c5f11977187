package stats

import (
	"context"
	"log/slog"

	"carboncli/internal/config"
	"carboncli/pkg/contracts/domain"
)

// Stats computes every result table of one pipeline run from the merged
// dataset. It is the single entry point the presentation layer consumes.
type Stats struct {
	logger       *slog.Logger
	topK         int
	decadeOffset int
}

// New creates a Stats instance from configuration.
func New(logger *slog.Logger, cfg config.StatsConfig) *Stats {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.DecadeOffset <= 0 {
		cfg.DecadeOffset = 10
	}
	return &Stats{
		logger:       logger,
		topK:         cfg.TopK,
		decadeOffset: cfg.DecadeOffset,
	}
}

// Compute derives per-capita metrics and produces the ranking and trend
// tables.
//
// An empty input yields empty tables, not an error. A missing
// decade-earlier comparison year suppresses the trend tables only; the
// ranking tables are still returned, and the trend error comes back to
// the caller for reporting.
func (s *Stats) Compute(ctx context.Context, records []domain.CountryYearRecord) (domain.Results, error) {
	if len(records) == 0 {
		s.logger.WarnContext(ctx, "no records to analyze, result tables will be empty")
		return domain.Results{}, nil
	}

	derived := Derive(records)

	results := domain.Results{
		EmissionsTop: TopPerYear(derived, domain.PerCapitaEmissions, s.topK),
		GDPTop:       TopPerYear(derived, domain.PerCapitaGDP, s.topK),
	}

	s.logger.InfoContext(ctx, "computed per-year rankings",
		slog.Int("top_k", s.topK),
		slog.Int("emissions_entries", len(results.EmissionsTop)),
		slog.Int("gdp_entries", len(results.GDPTop)))

	trend, err := DecadeTrend(derived, s.decadeOffset, s.topK)
	if err != nil {
		s.logger.ErrorContext(ctx, "cannot compute decade emission changes",
			slog.String("error", err.Error()))
		return results, err
	}

	results.TrendIncrease = trend.Increase
	results.TrendDecrease = trend.Decrease
	results.ReferenceYear = trend.ReferenceYear

	s.logger.InfoContext(ctx, "computed decade emission changes",
		slog.Int("reference_year", trend.ReferenceYear),
		slog.Int("comparison_year", trend.ComparisonYear),
		slog.Int("increase_entries", len(trend.Increase)),
		slog.Int("decrease_entries", len(trend.Decrease)))

	return results, nil
}
