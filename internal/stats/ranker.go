package stats

import (
	"sort"

	"carboncli/pkg/contracts/domain"
)

// TopPerYear builds the top-K-per-year table for one per-capita metric.
//
// Records with a missing metric value are excluded from their year, not
// from the table. Within a year entries are ordered by value descending,
// ties broken by country name ascending; years with fewer than K valid
// countries yield a shorter list. Year groups appear in ascending year
// order.
func TopPerYear(records []domain.DerivedRecord, metric domain.PerCapita, topK int) []domain.RankingEntry {
	byYear := make(map[int][]domain.DerivedRecord)
	for _, r := range records {
		if !metric.Of(r).Valid {
			continue
		}
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	var entries []domain.RankingEntry
	for _, year := range years {
		group := byYear[year]
		sort.Slice(group, func(i, j int) bool {
			vi, vj := metric.Of(group[i]).Float64, metric.Of(group[j]).Float64
			if vi != vj {
				return vi > vj
			}
			return group[i].Country < group[j].Country
		})
		if len(group) > topK {
			group = group[:topK]
		}
		for rank, r := range group {
			entries = append(entries, domain.RankingEntry{
				Year:    year,
				Rank:    rank + 1,
				Country: r.Country,
				Value:   metric.Of(r).Float64,
			})
		}
	}

	return entries
}
