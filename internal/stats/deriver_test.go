package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carboncli/pkg/contracts/domain"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name          string
		record        domain.CountryYearRecord
		wantEmissions domain.Value
		wantGDP       domain.Value
	}{
		{
			name: "all present",
			record: domain.CountryYearRecord{
				Country: "POLAND", Year: 2015,
				Emissions:  domain.NewValue(80),
				GDP:        domain.NewValue(400),
				Population: domain.NewValue(40),
			},
			wantEmissions: domain.NewValue(2),
			wantGDP:       domain.NewValue(10),
		},
		{
			name: "zero population yields missing even with present numerators",
			record: domain.CountryYearRecord{
				Country: "X", Year: 2010,
				Emissions:  domain.NewValue(100),
				GDP:        domain.NewValue(100),
				Population: domain.NewValue(0),
			},
			wantEmissions: domain.Missing(),
			wantGDP:       domain.Missing(),
		},
		{
			name: "missing population",
			record: domain.CountryYearRecord{
				Country: "X", Year: 2010,
				Emissions: domain.NewValue(100),
				GDP:       domain.NewValue(100),
			},
			wantEmissions: domain.Missing(),
			wantGDP:       domain.Missing(),
		},
		{
			name: "missing emissions only",
			record: domain.CountryYearRecord{
				Country: "X", Year: 2010,
				GDP:        domain.NewValue(100),
				Population: domain.NewValue(50),
			},
			wantEmissions: domain.Missing(),
			wantGDP:       domain.NewValue(2),
		},
		{
			name: "missing gdp only",
			record: domain.CountryYearRecord{
				Country: "X", Year: 2010,
				Emissions:  domain.NewValue(100),
				Population: domain.NewValue(50),
			},
			wantEmissions: domain.NewValue(2),
			wantGDP:       domain.Missing(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived := Derive([]domain.CountryYearRecord{tt.record})
			require.Len(t, derived, 1)

			assert.Equal(t, tt.wantEmissions, derived[0].EmissionsPerCapita)
			assert.Equal(t, tt.wantGDP, derived[0].GDPPerCapita)
			// the source record rides along untouched
			assert.Equal(t, tt.record, derived[0].CountryYearRecord)
		})
	}
}

// emissions_per_capita is missing iff population is missing, zero, or
// emissions is missing (and symmetrically for gdp_per_capita).
func TestDerive_MissingnessExact(t *testing.T) {
	values := []domain.Value{domain.Missing(), domain.NewValue(0), domain.NewValue(7)}

	var records []domain.CountryYearRecord
	for _, e := range values {
		for _, p := range values {
			records = append(records, domain.CountryYearRecord{
				Country: "X", Year: 2000, Emissions: e, Population: p,
			})
		}
	}

	for _, d := range Derive(records) {
		wantValid := d.Emissions.Valid && d.Population.Valid && d.Population.Float64 > 0
		assert.Equal(t, wantValid, d.EmissionsPerCapita.Valid,
			"emissions=%v population=%v", d.Emissions, d.Population)
	}
}
