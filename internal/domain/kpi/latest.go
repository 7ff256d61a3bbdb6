package kpi

import "sort"

// LatestPerKPI returns the most recent record for each KPI name in records.
// Recency is decided by CreatedAt; records with equal timestamps keep their
// input (store) order, so the later-appended record wins. KPIs appear in the
// order of their first observation.
func LatestPerKPI(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	latest := make(map[string]Record, len(sorted))
	order := make([]string, 0, len(sorted))
	for _, rec := range sorted {
		if _, seen := latest[rec.KPI]; !seen {
			order = append(order, rec.KPI)
		}
		latest[rec.KPI] = rec
	}

	out := make([]Record, 0, len(order))
	for _, name := range order {
		out = append(out, latest[name])
	}
	return out
}

// SortByCreatedAt orders records oldest first, preserving store order for
// equal timestamps.
func SortByCreatedAt(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}
