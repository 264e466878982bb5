package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		in        string
		want      string
		expectErr bool
	}{
		{"Day form", "2020-01-31", "2020-01-31", false},
		{"Month form", "2020-01", "2020-01", false},
		{"Month is normalized", "2020-13", "", true},
		{"Garbage", "N/A", "", true},
		{"Empty", "", "", true},
		{"Reversed", "31-01-2020", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Parse(tc.in)
			if (err != nil) != tc.expectErr {
				t.Fatalf("Parse(%q) error = %v, want error: %v", tc.in, err, tc.expectErr)
			}
			if err == nil && d.String() != tc.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tc.in, d.String(), tc.want)
			}
		})
	}
}

func TestGranularity(t *testing.T) {
	month := MustParse("2020-01")
	day := MustParse("2020-01-15")

	if month.Day() != 0 {
		t.Errorf("month date Day() = %d, want 0", month.Day())
	}
	if day.Day() != 15 {
		t.Errorf("day date Day() = %d, want 15", day.Day())
	}
	if !month.Before(day) {
		t.Errorf("%s should sort before %s", month, day)
	}
	if !day.After(month) {
		t.Errorf("%s should sort after %s", day, month)
	}
}

func TestOrdering(t *testing.T) {
	a := NewMonth(2020, time.January)
	b := NewMonth(2020, time.February)
	if !a.Before(b) || b.Before(a) {
		t.Errorf("want %s < %s", a, b)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("a date should not be before or after itself")
	}
}

func TestDateJSON(t *testing.T) {
	for _, in := range []string{"2020-01", "2020-01-31"} {
		t.Run(in, func(t *testing.T) {
			d := MustParse(in)
			b, err := json.Marshal(d)
			if err != nil {
				t.Fatalf("Marshal(%s): %v", d, err)
			}
			var back Date
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("Unmarshal(%s): %v", b, err)
			}
			if back != d {
				t.Errorf("round trip = %s, want %s", back, d)
			}
		})
	}
}
