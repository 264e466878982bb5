package marketdata

// Merge joins a rental series set onto a value series set by region id.
//
// Rental coverage is expected to be a subset of value coverage: every value
// region appears exactly once in the output, regions without a rental match
// simply carry no rents, and rental regions without a value match are
// dropped. A nil or empty rental set degrades to a value-only dataset.
func Merge(values []RegionSeries, rents []RegionSeries) []*RegionStats {
	byID := make(map[string]*RegionSeries, len(rents))
	for i := range rents {
		byID[rents[i].ID] = &rents[i]
	}

	stats := make([]*RegionStats, 0, len(values))
	for _, v := range values {
		if r, ok := byID[v.ID]; ok {
			stats = append(stats, NewRegionStats(v, &r.Points))
		} else {
			stats = append(stats, NewRegionStats(v, nil))
		}
	}
	return stats
}
