package marketdata

import "strings"

// MarketIndex maps every human-facing key of a region (zip code, "City, ST"
// in original and lowercased form, slug form) to its record. Many keys alias
// the same record; every record is reachable at least through its canonical
// "City, ST" key.
//
// An index is immutable once built: providers publish a rebuilt index by
// swapping the reference.
type MarketIndex struct {
	records []*RegionStats
	index   map[string]*RegionStats
	lower   map[string]*RegionStats
}

// NewMarketIndex builds the lookup structure for a set of records.
func NewMarketIndex(records []*RegionStats) *MarketIndex {
	m := &MarketIndex{
		records: make([]*RegionStats, 0, len(records)),
		index:   make(map[string]*RegionStats, 4*len(records)),
		lower:   make(map[string]*RegionStats, 4*len(records)),
	}
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		m.records = append(m.records, rec)
		for _, key := range regionKeys(rec.Region) {
			m.add(key, rec)
		}
	}
	return m
}

// add registers one alias, first write wins so earlier records keep their keys.
func (m *MarketIndex) add(key string, rec *RegionStats) {
	if key == "" {
		return
	}
	if _, ok := m.index[key]; !ok {
		m.index[key] = rec
	}
	low := strings.ToLower(key)
	if _, ok := m.lower[low]; !ok {
		m.lower[low] = rec
	}
}

// Lookup resolves a user query: an exact-case attempt against all registered
// keys, then a case-insensitive one. It returns nil when neither matches.
func (m *MarketIndex) Lookup(query string) *RegionStats {
	query = strings.TrimSpace(query)
	if rec, ok := m.index[query]; ok {
		return rec
	}
	if rec, ok := m.lower[strings.ToLower(query)]; ok {
		return rec
	}
	return nil
}

// Len returns the number of distinct regions in the index.
func (m *MarketIndex) Len() int { return len(m.records) }

// All returns each distinct region exactly once, in insertion order,
// regardless of how many keys alias it.
func (m *MarketIndex) All() []*RegionStats {
	out := make([]*RegionStats, len(m.records))
	copy(out, m.records)
	return out
}

// regionKeys lists the aliases a region is reachable by.
func regionKeys(r Region) []string {
	keys := make([]string, 0, 5)
	if r.ZipCode != "" {
		keys = append(keys, r.ZipCode)
	}
	if r.City != "" && r.State != "" {
		canonical := r.City + ", " + r.State
		keys = append(keys, canonical, Slugify(canonical))
	}
	if r.Name != "" {
		keys = append(keys, r.Name)
	}
	return keys
}
