package stats

import (
	"carboncli/pkg/contracts/domain"
)

// Derive computes the per-capita metrics for every consolidated record.
// It is pure: input records are not touched and the only failure mode is
// a missing result. A missing or zero population makes both per-capita
// values missing regardless of the numerators.
func Derive(records []domain.CountryYearRecord) []domain.DerivedRecord {
	derived := make([]domain.DerivedRecord, len(records))
	for i, r := range records {
		derived[i] = domain.DerivedRecord{
			CountryYearRecord:  r,
			EmissionsPerCapita: perCapita(r.Emissions, r.Population),
			GDPPerCapita:       perCapita(r.GDP, r.Population),
		}
	}
	return derived
}

// perCapita divides total by population with a guarded denominator.
func perCapita(total, population domain.Value) domain.Value {
	if !total.Valid || !population.Valid || population.Float64 <= 0 {
		return domain.Missing()
	}
	return domain.NewValue(total.Float64 / population.Float64)
}
