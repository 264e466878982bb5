package marketdata

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/housefax/marketdata/date"
)

// onDemandProvider fetches exactly one region's pair of small files per
// request. Nothing is pre-loaded and nothing is cached across calls: every
// request is independent.
type onDemandProvider struct {
	cfg    Config
	client *http.Client

	dirOnce  sync.Once
	dirIndex map[string]Region // lowercased alias -> directory entry
}

func newOnDemandProvider(cfg Config, client *http.Client) *onDemandProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &onDemandProvider{cfg: cfg, client: client}
}

// valuesURL and rentsURL are the predictable per-region file locations.
func (p *onDemandProvider) valuesURL(slug string) string {
	return fmt.Sprintf("%s/values/%s.csv", strings.TrimSuffix(p.cfg.BaseURL, "/"), slug)
}

func (p *onDemandProvider) rentsURL(slug string) string {
	return fmt.Sprintf("%s/rents/%s.csv", strings.TrimSuffix(p.cfg.BaseURL, "/"), slug)
}

func (p *onDemandProvider) Stats(ctx context.Context, query string) (*RegionStats, error) {
	region, slug := p.resolve(query)

	// The two files are independent: fetch them concurrently, and absorb any
	// rental failure. Only the value file decides the outcome.
	var valText, rentText string
	var rentErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		valText, err = Download(gctx, p.client, p.valuesURL(slug), nil)
		return err
	})
	g.Go(func() error {
		rentText, rentErr = Download(gctx, p.client, p.rentsURL(slug), nil)
		return nil
	})
	if err := g.Wait(); err != nil {
		var dl *DownloadError
		if errors.As(err, &dl) && dl.StatusCode != 0 {
			// The host answered: there is no data for this place.
			return nil, ErrNotFound
		}
		// The host was unreachable, which a caller must be able to tell apart
		// from an unknown region.
		return nil, err
	}

	values, err := ParseWide(strings.NewReader(valText))
	if err != nil {
		// An empty or malformed per-region file reads as an absent region.
		return nil, ErrNotFound
	}
	series := values[0]
	fillRegion(&series.Region, region)

	var rents *date.History[float64]
	if rentErr != nil {
		log.Printf("rents unavailable for %q (ignored): %v", slug, rentErr)
	} else if parsed, err := ParseWide(strings.NewReader(rentText)); err == nil {
		rents = &parsed[0].Points
	}

	return NewRegionStats(series, rents), nil
}

// resolve turns a free-text query into the slug of its per-region files,
// going through the region directory first so that zip codes and case
// variants land on the canonical region. An unlisted query falls back to its
// own slug form.
func (p *onDemandProvider) resolve(query string) (Region, string) {
	p.dirOnce.Do(p.loadDirectory)
	if r, ok := p.dirIndex[strings.ToLower(strings.TrimSpace(query))]; ok {
		return r, Slugify(r.City + ", " + r.State)
	}
	return Region{}, Slugify(query)
}

// loadDirectory fetches the region listing once per provider. Absence of the
// directory is absorbed: queries then resolve by direct slugging only.
func (p *onDemandProvider) loadDirectory() {
	p.dirIndex = make(map[string]Region)
	if p.cfg.DirectoryURL == "" {
		return
	}
	regions, err := FetchRegions(daily(), p.cfg.DirectoryURL)
	if err != nil {
		log.Printf("region directory unavailable (ignored): %v", err)
		return
	}
	for _, r := range regions {
		for _, key := range regionKeys(r) {
			low := strings.ToLower(key)
			if _, ok := p.dirIndex[low]; !ok {
				p.dirIndex[low] = r
			}
		}
	}
}

// fillRegion completes blank metadata of a parsed region with the directory
// descriptor.
func fillRegion(dst *Region, src Region) {
	if dst.ID == "" {
		dst.ID = src.ID
	}
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.City == "" {
		dst.City = src.City
	}
	if dst.State == "" {
		dst.State = src.State
	}
	if dst.ZipCode == "" {
		dst.ZipCode = src.ZipCode
	}
}
