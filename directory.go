package marketdata

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

// The region directory is a single JSON document listing every region the
// data host can serve, used to resolve free-text queries to canonical
// regions before fetching per-region files, and to enrich bulk records with
// zip codes.
//
// Some deployments publish the bare array, others wrap it:
//
//	[ {"id": "394532", "name": "Detroit, MI", ...}, ... ]
//	{ "regions": [ ... ] }

// FetchRegions downloads and decodes the region directory listing.
func FetchRegions(client *http.Client, addr string) ([]Region, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch region directory: %w", err)
	}

	list, ok := jobj.([]any)
	if !ok {
		// wrapped form
		jval, err := jsonpath.Get("$.regions", jobj)
		if err != nil {
			return nil, fmt.Errorf("region directory is neither a list nor an object wrapping one: %w", err)
		}
		if list, ok = jval.([]any); !ok {
			return nil, fmt.Errorf("region directory property 'regions' is not a list")
		}
	}

	// Round-trip through json to decode the generic values into Region.
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("cannot re-encode region directory: %w", err)
	}
	var regions []Region
	if err := json.Unmarshal(raw, &regions); err != nil {
		return nil, fmt.Errorf("cannot decode region directory entries: %w", err)
	}
	for i := range regions {
		if regions[i].City == "" {
			regions[i].City = cityOf(regions[i].Name)
		}
	}
	return regions, nil
}
