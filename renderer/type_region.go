package renderer

import (
	"github.com/housefax/marketdata"
)

// maxRows bounds the history table: reports show the trailing year.
const maxRows = 12

// Row is one formatted observation.
type Row struct {
	On    string
	Value string
}

// RegionReport is the display form of a region's statistics, with every
// figure already formatted.
type RegionReport struct {
	Title string
	ID    string
	Zip   string

	CurrentValue string
	ValueChange  string
	ValueRows    []Row

	HasRents    bool
	CurrentRent string
	RentChange  string
	RentRows    []Row
}

// NewRegionReport formats a merged record into its report.
func NewRegionReport(s *marketdata.RegionStats) *RegionReport {
	r := &RegionReport{
		Title:        s.Name,
		ID:           s.ID,
		Zip:          s.ZipCode,
		CurrentValue: s.CurrentPrice().String(),
		ValueChange:  s.ValueChange.SignedString(),
	}
	if r.Title == "" {
		r.Title = s.City + ", " + s.State
	}

	for on, v := range s.Points.Values() {
		r.ValueRows = append(r.ValueRows, Row{On: on.String(), Value: marketdata.M(v, "USD").String()})
	}
	if len(r.ValueRows) > maxRows {
		r.ValueRows = r.ValueRows[len(r.ValueRows)-maxRows:]
	}

	if s.Rents != nil {
		r.HasRents = true
		r.CurrentRent = s.CurrentRentPrice().String()
		r.RentChange = s.RentChange.SignedString()
		for on, v := range s.Rents.Values() {
			r.RentRows = append(r.RentRows, Row{On: on.String(), Value: marketdata.M(v, "USD").String()})
		}
		if len(r.RentRows) > maxRows {
			r.RentRows = r.RentRows[len(r.RentRows)-maxRows:]
		}
	}
	return r
}
