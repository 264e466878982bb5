package marketdata

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/housefax/marketdata/cache"
)

// datasetKey is the durable cache key of the fully parsed and merged dataset.
const datasetKey = "dataset"

// bulkProvider downloads both index files once, merges them, persists the
// result durably and serves every query from memory.
//
// The load is one-shot: the first AwaitReady (or Stats) call starts it, every
// concurrent caller awaits the same completion, and the index is published
// with a single atomic swap so readers never observe a partial state.
type bulkProvider struct {
	cfg    Config
	client *http.Client
	store  *cache.Store

	once    sync.Once
	done    chan struct{}
	loadErr error
	index   atomic.Pointer[MarketIndex]

	mu       sync.Mutex
	progress LoadProgress
}

func newBulkProvider(cfg Config, store *cache.Store, client *http.Client) *bulkProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &bulkProvider{cfg: cfg, client: client, store: store, done: make(chan struct{})}
}

// AwaitReady triggers the load if needed and blocks until it completes.
func (p *bulkProvider) AwaitReady(ctx context.Context) error {
	p.once.Do(func() { go p.load() })
	select {
	case <-p.done:
		return p.loadErr
	case <-ctx.Done():
		// The load itself runs to completion or failure; only the wait is abortable.
		return ctx.Err()
	}
}

func (p *bulkProvider) Stats(ctx context.Context, query string) (*RegionStats, error) {
	if err := p.AwaitReady(ctx); err != nil {
		return nil, err
	}
	if rec := p.index.Load().Lookup(query); rec != nil {
		return rec, nil
	}
	return nil, ErrNotFound
}

func (p *bulkProvider) All(ctx context.Context) ([]*RegionStats, error) {
	if err := p.AwaitReady(ctx); err != nil {
		return nil, err
	}
	return p.index.Load().All(), nil
}

func (p *bulkProvider) Progress() LoadProgress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

func (p *bulkProvider) setProgress(percent float64, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = LoadProgress{Percent: percent, Message: message}
}

// stage maps byte-level download progress onto one slice [lo,hi] of the
// overall 0-100 load progress. Unknown-size downloads hold the stage floor
// until completion.
func (p *bulkProvider) stage(lo, hi float64, message string) ProgressFunc {
	return func(dp Progress) {
		percent := lo
		if frac, known := dp.Percent(); known {
			percent = lo + (hi-lo)*frac/100
		}
		p.setProgress(percent, message)
	}
}

// load runs the bulk ingestion once. Cancellation mid-download is not
// supported: a started load runs to completion or failure.
func (p *bulkProvider) load() {
	defer close(p.done)
	ctx := context.Background()

	// Fast path: a previously parsed and merged dataset. No network at all.
	var records []*RegionStats
	if err := p.store.Get(datasetKey, &records); err == nil && len(records) > 0 {
		p.index.Store(NewMarketIndex(records))
		p.setProgress(100, "")
		log.Printf("loaded %d regions from cache namespace %q", len(records), p.cfg.Namespace)
		return
	}

	// Primary file: any failure here is fatal, there is no dataset without it.
	p.setProgress(0, "downloading home values")
	text, err := Download(ctx, p.client, p.cfg.ValuesURL, p.stage(0, 45, "downloading home values"))
	if err != nil {
		p.fail(err)
		return
	}
	p.setProgress(45, "parsing home values")
	values, err := ParseWide(strings.NewReader(text))
	if err != nil {
		p.fail(err)
		return
	}
	p.setProgress(50, "downloading rents")

	// Secondary file: absorbed on failure, the dataset degrades to value-only.
	var rents []RegionSeries
	if p.cfg.RentsURL != "" {
		text, err := Download(ctx, p.client, p.cfg.RentsURL, p.stage(50, 80, "downloading rents"))
		if err == nil {
			rents, err = ParseWide(strings.NewReader(text))
		}
		if err != nil {
			log.Printf("rental data unavailable, serving home values only: %v", err)
			rents = nil
		}
	}

	p.setProgress(80, "merging")
	records = Merge(values, rents)
	p.enrichZips(records)

	p.setProgress(90, "saving dataset")
	if err := p.store.Set(datasetKey, records, cache.Never()); err != nil {
		// Caching is an optimization; next run will re-download.
		log.Printf("cannot persist dataset (ignored): %v", err)
	}

	p.setProgress(95, "indexing")
	p.index.Store(NewMarketIndex(records))
	p.setProgress(100, "")
	log.Printf("loaded %d regions (%d with rents) from %s", len(records), countRents(records), p.cfg.ValuesURL)
}

// fail records a fatal load outcome and resets the progress so a UI does not
// show a frozen bar.
func (p *bulkProvider) fail(err error) {
	p.loadErr = err
	p.setProgress(0, "")
	log.Printf("bulk load failed: %v", err)
}

// enrichZips attaches zip codes from the region directory to the bulk
// records, which carry none. Directory failures are absorbed: zips are a
// lookup convenience, not part of the dataset.
func (p *bulkProvider) enrichZips(records []*RegionStats) {
	if p.cfg.DirectoryURL == "" {
		return
	}
	regions, err := FetchRegions(daily(), p.cfg.DirectoryURL)
	if err != nil {
		log.Printf("region directory unavailable (ignored): %v", err)
		return
	}
	zips := make(map[string]string, len(regions))
	for _, r := range regions {
		if r.ZipCode != "" {
			zips[r.ID] = r.ZipCode
		}
	}
	for _, rec := range records {
		if zip, ok := zips[rec.ID]; ok && rec.ZipCode == "" {
			rec.ZipCode = zip
		}
	}
}

func countRents(records []*RegionStats) int {
	n := 0
	for _, rec := range records {
		if rec.Rents != nil {
			n++
		}
	}
	return n
}
