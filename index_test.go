package marketdata

import "testing"

func testIndex() *MarketIndex {
	detroit := NewRegionStats(series("1", "Detroit, MI", "MI", 300000, 305000), nil)
	detroit.ZipCode = "48201"
	beverly := NewRegionStats(series("2", "Beverly Hills, CA", "CA", 3500000), nil)
	beverly.ZipCode = "90210"
	return NewMarketIndex([]*RegionStats{detroit, beverly})
}

func TestLookup(t *testing.T) {
	m := testIndex()

	testCases := []struct {
		name   string
		query  string
		wantID string
	}{
		{"Canonical", "Detroit, MI", "1"},
		{"Case insensitive", "detroit, mi", "1"},
		{"Slug", "detroit-mi", "1"},
		{"Zip code", "90210", "2"},
		{"Surrounding space", "  Detroit, MI  ", "1"},
		{"Unknown city", "Atlantis, XX", ""},
		{"Unregistered zip", "00000", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := m.Lookup(tc.query)
			if tc.wantID == "" {
				if rec != nil {
					t.Fatalf("Lookup(%q) = %q, want no match", tc.query, rec.ID)
				}
				return
			}
			if rec == nil {
				t.Fatalf("Lookup(%q) = nil, want region %s", tc.query, tc.wantID)
			}
			if rec.ID != tc.wantID {
				t.Errorf("Lookup(%q) = region %s, want %s", tc.query, rec.ID, tc.wantID)
			}
		})
	}
}

func TestIndexAll(t *testing.T) {
	m := testIndex()
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	all := m.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d records, want 2", len(all))
	}
	if all[0].ID != "1" || all[1].ID != "2" {
		t.Errorf("All() order = %s,%s, want insertion order 1,2", all[0].ID, all[1].ID)
	}
}

func TestIndexDedup(t *testing.T) {
	rec := NewRegionStats(series("1", "Detroit, MI", "MI", 300000), nil)
	m := NewMarketIndex([]*RegionStats{rec, rec})
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after deduplicating by id", m.Len())
	}
}
