package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const detroitValuesCSV = wideHeader + "\n" +
	`1,"Detroit, MI",MI,,,,,,300000,305000` + "\n"

const detroitRentsCSV = wideHeader + "\n" +
	`1,"Detroit, MI",MI,,,,,,1200,1210` + "\n"

// onDemandServer serves the per-region file pair for detroit-mi only.
func onDemandServer(t *testing.T, withRents bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/values/detroit-mi.csv":
			w.Write([]byte(detroitValuesCSV))
		case "/rents/detroit-mi.csv":
			if withRents {
				w.Write([]byte(detroitRentsCSV))
				return
			}
			http.NotFound(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOnDemandStats(t *testing.T) {
	srv := onDemandServer(t, true)
	p := newOnDemandProvider(Config{Kind: KindOnDemand, BaseURL: srv.URL}, srv.Client())

	// Queries differing only in case or form reach the same file pair.
	for _, query := range []string{"Detroit, MI", "detroit, mi", "detroit-mi"} {
		stats, err := p.Stats(context.Background(), query)
		if err != nil {
			t.Fatalf("Stats(%q): %v", query, err)
		}
		if stats.CurrentValue != 305000 {
			t.Errorf("Stats(%q).CurrentValue = %v, want 305000", query, stats.CurrentValue)
		}
		if stats.CurrentRent != 1210 {
			t.Errorf("Stats(%q).CurrentRent = %v, want 1210", query, stats.CurrentRent)
		}
	}
}

func TestOnDemandMissingRents(t *testing.T) {
	srv := onDemandServer(t, false)
	p := newOnDemandProvider(Config{Kind: KindOnDemand, BaseURL: srv.URL}, srv.Client())

	stats, err := p.Stats(context.Background(), "Detroit, MI")
	if err != nil {
		t.Fatalf("a missing rental file must not fail the lookup: %v", err)
	}
	if stats.Rents != nil {
		t.Errorf("Rents should be absent when the rental file is missing")
	}
	if stats.CurrentValue != 305000 {
		t.Errorf("CurrentValue = %v, want 305000", stats.CurrentValue)
	}
}

func TestOnDemandUnknownRegion(t *testing.T) {
	srv := onDemandServer(t, true)
	p := newOnDemandProvider(Config{Kind: KindOnDemand, BaseURL: srv.URL}, srv.Client())

	if _, err := p.Stats(context.Background(), "Atlantis, XX"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Stats = %v, want ErrNotFound when the host answers 404", err)
	}
}

func TestOnDemandConnectivityError(t *testing.T) {
	srv := onDemandServer(t, true)
	base := srv.URL
	srv.Close() // nothing listens anymore

	p := newOnDemandProvider(Config{Kind: KindOnDemand, BaseURL: base}, http.DefaultClient)
	_, err := p.Stats(context.Background(), "Detroit, MI")
	if err == nil {
		t.Fatal("an unreachable host should fail the lookup")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("an unreachable host must not read as an unknown region, got %v", err)
	}
}

func TestFillRegion(t *testing.T) {
	dst := Region{ID: "1", Name: "Detroit, MI"}
	fillRegion(&dst, Region{ID: "9", City: "Detroit", State: "MI", ZipCode: "48201"})

	if dst.ID != "1" {
		t.Errorf("ID = %q, present fields must not be overwritten", dst.ID)
	}
	if dst.City != "Detroit" || dst.State != "MI" || dst.ZipCode != "48201" {
		t.Errorf("blank fields not filled: %+v", dst)
	}
}
