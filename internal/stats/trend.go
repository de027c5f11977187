package stats

import (
	"sort"

	"carboncli/internal/errors"
	"carboncli/pkg/contracts/domain"
)

// Trend holds the decade-over-decade emission change tables.
type Trend struct {
	// Increase lists the topK largest positive deltas, delta descending.
	Increase []domain.TrendEntry
	// Decrease lists the topK most negative deltas, delta ascending.
	Decrease []domain.TrendEntry
	// ReferenceYear is the most recent year with emissions-per-capita
	// data; ComparisonYear is exactly offset years earlier.
	ReferenceYear  int
	ComparisonYear int
}

// DecadeTrend compares each country's emissions per capita in the
// reference year against the value exactly offset years earlier.
//
// The reference year is the most recent year carrying at least one
// non-missing emissions-per-capita value. The comparison year must be
// present in the dataset with at least one such value as well; there is
// no interpolation or nearest-year fallback. Only countries with valid
// values in both years participate.
func DecadeTrend(records []domain.DerivedRecord, offset, topK int) (Trend, error) {
	// per-year emissions per capita by country, valid values only
	byYear := make(map[int]map[string]float64)
	for _, r := range records {
		if !r.EmissionsPerCapita.Valid {
			continue
		}
		countries, ok := byYear[r.Year]
		if !ok {
			countries = make(map[string]float64)
			byYear[r.Year] = countries
		}
		countries[r.Country] = r.EmissionsPerCapita.Float64
	}

	if len(byYear) == 0 {
		return Trend{}, errors.NewAppError(errors.ErrTypeInsufficientHistory,
			"dataset has no emissions-per-capita values", errors.ErrInsufficientHistory)
	}

	referenceYear := 0
	for year := range byYear {
		if year > referenceYear {
			referenceYear = year
		}
	}
	comparisonYear := referenceYear - offset

	past, ok := byYear[comparisonYear]
	if !ok {
		return Trend{}, errors.NewInsufficientHistoryError(referenceYear, comparisonYear)
	}
	recent := byYear[referenceYear]

	var deltas []domain.TrendEntry
	for country, recentValue := range recent {
		pastValue, ok := past[country]
		if !ok {
			continue
		}
		deltas = append(deltas, domain.TrendEntry{
			Country: country,
			Recent:  recentValue,
			Past:    pastValue,
			Delta:   recentValue - pastValue,
		})
	}

	increase := make([]domain.TrendEntry, len(deltas))
	copy(increase, deltas)
	sort.Slice(increase, func(i, j int) bool {
		if increase[i].Delta != increase[j].Delta {
			return increase[i].Delta > increase[j].Delta
		}
		return increase[i].Country < increase[j].Country
	})

	decrease := make([]domain.TrendEntry, len(deltas))
	copy(decrease, deltas)
	sort.Slice(decrease, func(i, j int) bool {
		if decrease[i].Delta != decrease[j].Delta {
			return decrease[i].Delta < decrease[j].Delta
		}
		return decrease[i].Country < decrease[j].Country
	})

	if len(increase) > topK {
		increase = increase[:topK]
	}
	if len(decrease) > topK {
		decrease = decrease[:topK]
	}

	return Trend{
		Increase:       increase,
		Decrease:       decrease,
		ReferenceYear:  referenceYear,
		ComparisonYear: comparisonYear,
	}, nil
}
