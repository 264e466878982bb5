package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/housefax/marketdata"
	"github.com/housefax/marketdata/date"
)

func testStats(t *testing.T, withRents bool) *marketdata.RegionStats {
	t.Helper()
	series := marketdata.RegionSeries{
		Region: marketdata.Region{ID: "1", Name: "Detroit, MI", City: "Detroit", State: "MI", ZipCode: "48201"},
	}
	series.Points.Append(date.NewMonth(2020, time.January), 300000)
	series.Points.Append(date.NewMonth(2020, time.February), 305000)

	var rents *date.History[float64]
	if withRents {
		rents = &date.History[float64]{}
		rents.Append(date.NewMonth(2020, time.January), 1200)
		rents.Append(date.NewMonth(2020, time.February), 1210)
	}
	return marketdata.NewRegionStats(series, rents)
}

// headings parses markdown and returns the text of every heading, verifying
// on the way that the output is well-formed markdown.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var out []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			var b strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					b.Write(txt.Segment.Value(source))
				}
			}
			out = append(out, b.String())
		}
		return ast.WalkContinue, nil
	})
	return out
}

func TestRenderRegion(t *testing.T) {
	md := RenderRegion(NewRegionReport(testStats(t, true)))

	got := headings(t, md)
	want := []string{"Detroit, MI", "Home values", "Rents"}
	if len(got) != len(want) {
		t.Fatalf("headings = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %q, want %q", i, got[i], want[i])
		}
	}

	for _, fragment := range []string{
		"Region 1 (zip 48201)",
		"**$305,000.00**",
		"+1.67%",
		"**$1,210.00**",
		"| 2020-02 | $305,000.00 |",
		"| 2020-02 | $1,210.00 |",
	} {
		if !strings.Contains(md, fragment) {
			t.Errorf("report is missing %q:\n%s", fragment, md)
		}
	}
}

func TestRenderRegionNoRents(t *testing.T) {
	md := RenderRegion(NewRegionReport(testStats(t, false)))

	for _, heading := range headings(t, md) {
		if heading == "Rents" {
			t.Errorf("a value-only region should not have a rents section")
		}
	}
	if !strings.Contains(md, "No rental data for this region.") {
		t.Errorf("missing the no-rental notice:\n%s", md)
	}
}

func TestRegionReportTrailingYear(t *testing.T) {
	series := marketdata.RegionSeries{
		Region: marketdata.Region{ID: "1", Name: "Detroit, MI"},
	}
	for i := range 30 {
		series.Points.Append(date.NewMonth(2018+i/12, time.Month(1+i%12)), 100000+float64(i)*1000)
	}
	r := NewRegionReport(marketdata.NewRegionStats(series, nil))

	if len(r.ValueRows) != maxRows {
		t.Fatalf("got %d rows, want the trailing %d", len(r.ValueRows), maxRows)
	}
	if last := r.ValueRows[len(r.ValueRows)-1]; last.On != "2020-06" {
		t.Errorf("last row is %q, want 2020-06", last.On)
	}
}
