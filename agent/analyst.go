package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/housefax/marketdata"
)

const model = "gemini-2.5-pro"

// NewAnalyst returns the housing market analyst expert. Its tools read
// through the given provider, so answers are grounded in the same data the
// rest of the application serves.
func NewAnalyst(p marketdata.Provider) *Expert {
	lib := []*Func{lookupRegionFunc(p), listRegionsFunc(p)}

	return &Expert{
		Name: "Analyst",
		Description: `This is a housing market analyst. He can look up home values and
		rents for any region the data source covers, and compare markets.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a housing market analyst. Use the available tools to look up
			home value and rental statistics for the regions the user asks about.
			Queries can be zip codes, "City, ST" names in any casing, or slugs.
			Present figures with their currency and note the month-over-month
			change. When a region is not covered, say so plainly instead of
			guessing numbers.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// lookupRegionFunc exposes Provider.Stats as a tool.
func lookupRegionFunc(p marketdata.Provider) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "lookup_region",
			Description: "Look up home value and rental statistics for one region.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {
						Type:        genai.TypeString,
						Description: "A zip code, a \"City, ST\" name, or a region slug.",
					},
				},
				Required: []string{"query"},
			},
		},
		Call: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			fresp := &genai.FunctionResponse{ID: id, Name: "lookup_region", Response: map[string]any{}}
			query, ok := args["query"].(string)
			if !ok {
				fresp.Response["error"] = fmt.Sprintf("invalid query type %T, expected string", args["query"])
				return fresp
			}
			stats, err := p.Stats(ctx, query)
			if errors.Is(err, marketdata.ErrNotFound) {
				fresp.Response["output"] = fmt.Sprintf("no region matches %q", query)
				return fresp
			}
			if err != nil {
				fresp.Response["error"] = err.Error()
				return fresp
			}
			out, err := json.Marshal(stats)
			if err != nil {
				fresp.Response["error"] = err.Error()
				return fresp
			}
			fresp.Response["output"] = string(out)
			return fresp
		},
	}
}

// listRegionsFunc lists the covered regions when the provider pre-loads them.
func listRegionsFunc(p marketdata.Provider) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "list_regions",
			Description: "List every region the data source covers, with its id, name and zip code.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
		},
		Call: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			fresp := &genai.FunctionResponse{ID: id, Name: "list_regions", Response: map[string]any{}}
			bulk, ok := p.(marketdata.BulkLoader)
			if !ok {
				fresp.Response["output"] = "the current data source fetches regions on demand and has no listing"
				return fresp
			}
			records, err := bulk.All(ctx)
			if err != nil {
				fresp.Response["error"] = err.Error()
				return fresp
			}
			type entry struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				ZipCode string `json:"zipCode,omitempty"`
			}
			entries := make([]entry, 0, len(records))
			for _, rec := range records {
				entries = append(entries, entry{ID: rec.ID, Name: rec.Name, ZipCode: rec.ZipCode})
			}
			out, err := json.Marshal(entries)
			if err != nil {
				fresp.Response["error"] = err.Error()
				return fresp
			}
			fresp.Response["output"] = string(out)
			return fresp
		},
	}
}
