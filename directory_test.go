package marketdata

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchRegions(t *testing.T) {
	const entries = `[
		{"id": "394532", "name": "Detroit, MI", "state": "MI", "zipCode": "48201"},
		{"id": "13271", "name": "Beverly Hills, CA", "city": "Beverly Hills", "state": "CA", "zipCode": "90210"}
	]`

	testCases := []struct {
		name string
		body string
	}{
		{"Bare list", entries},
		{"Wrapped list", `{"regions": ` + entries + `}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			regions, err := FetchRegions(srv.Client(), srv.URL)
			if err != nil {
				t.Fatalf("FetchRegions: %v", err)
			}
			if len(regions) != 2 {
				t.Fatalf("got %d regions, want 2", len(regions))
			}
			detroit := regions[0]
			if detroit.ID != "394532" || detroit.ZipCode != "48201" {
				t.Errorf("detroit = %+v", detroit)
			}
			// A blank city is derived from the display name.
			if detroit.City != "Detroit" {
				t.Errorf("City = %q, want Detroit", detroit.City)
			}
		})
	}
}

func TestFetchRegionsMalformed(t *testing.T) {
	for _, body := range []string{`{"markets": []}`, `"just a string"`, `{"regions": 42}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		if _, err := FetchRegions(srv.Client(), srv.URL); err == nil {
			t.Errorf("FetchRegions on %q should fail", body)
		}
		srv.Close()
	}
}
