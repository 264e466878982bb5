package marketdata

import (
	"github.com/housefax/marketdata/date"
)

// Region identifies a geographic market. A region has one stable identifier
// and several human-facing keys (zip code, "City, ST", slug) that all resolve
// to it through the MarketIndex.
type Region struct {
	ID      string `json:"id"`
	Name    string `json:"name"` // display name, usually "<City>, <ST>"
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode,omitempty"`
}

// RegionSeries is one region's home-value time series as parsed from a wide
// index file. Dates are ascending and unique; months with no observation are
// simply absent from Points.
type RegionSeries struct {
	Region
	Points date.History[float64] `json:"points"`
}

// RegionStats is the merged view served to callers: the home-value series,
// the optional rental series, and summary figures derived from both.
type RegionStats struct {
	RegionSeries
	Rents *date.History[float64] `json:"rents,omitempty"`

	CurrentValue float64 `json:"currentValue"`
	ValueChange  Percent `json:"valueChange"`
	CurrentRent  float64 `json:"currentRent,omitempty"`
	RentChange   Percent `json:"rentChange,omitempty"`
}

// NewRegionStats builds the merged record for a value series and an optional
// rental series, computing the derived summary fields.
func NewRegionStats(values RegionSeries, rents *date.History[float64]) *RegionStats {
	s := &RegionStats{RegionSeries: values}
	s.CurrentValue, s.ValueChange = summarize(&s.Points)
	if rents != nil && rents.Len() > 0 {
		s.Rents = rents
		s.CurrentRent, s.RentChange = summarize(rents)
	}
	return s
}

// CurrentPrice returns the latest home value as displayable money.
func (s *RegionStats) CurrentPrice() Money { return M(s.CurrentValue, "USD") }

// CurrentRentPrice returns the latest rent as displayable money.
func (s *RegionStats) CurrentRentPrice() Money { return M(s.CurrentRent, "USD") }

// summarize returns the last value of a series and the month-over-month
// change between the last two observations. With fewer than two points, or a
// zero previous value, the change is 0.
func summarize(h *date.History[float64]) (current float64, change Percent) {
	n := h.Len()
	if n == 0 {
		return 0, 0
	}
	_, current = h.Latest()
	if n < 2 {
		return current, 0
	}
	_, previous := h.At(n - 2)
	if previous == 0 {
		return current, 0
	}
	return current, Percent((current - previous) / previous * 100)
}
