package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayFormat is the format used to represent day-level dates in ISO-8601 format.
const DayFormat = "2006-01-02"

// MonthFormat is the format used to represent month-level dates, as found in
// the column headers of monthly index files.
const MonthFormat = "2006-01"

// Date represents a point on the calendar with either day or month
// granularity. Index files publish monthly observations ("2020-01") while
// per-region files may carry full days ("2020-01-31"); both sort and compare
// consistently.
type Date struct {
	y int
	m time.Month
	d int // 0 means month granularity
}

// New returns a normalized day-level Date.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// NewMonth returns a month-level Date.
func NewMonth(year int, month time.Month) Date {
	y, m, _ := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Date()
	return Date{y: y, m: m}
}

// Today returns the current day-level date.
func Today() Date { return New(time.Now().Date()) }

// time returns a canonical time.Time for comparisons (midnight UTC, month
// dates anchored on the 1st).
func (d Date) time() time.Time {
	day := d.d
	if day == 0 {
		day = 1
	}
	return time.Date(d.y, d.m, day, 0, 0, 0, 0, time.UTC)
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month, or 0 for a month-level date.
func (d Date) Day() int { return d.d }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// String formats the date in its standard format, matching its granularity.
func (d Date) String() string {
	if d.d == 0 {
		return d.time().Format(MonthFormat)
	}
	return d.time().Format(DayFormat)
}

// Parse parses a Date from a string, accepting both "2006-01-02" and the
// month-only "2006-01" form.
func Parse(str string) (Date, error) {
	if on, err := time.Parse(DayFormat, str); err == nil {
		return New(on.Date()), nil
	}
	on, err := time.Parse(MonthFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want %q or %q", str, DayFormat, MonthFormat)
	}
	return NewMonth(on.Year(), on.Month()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshal a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshal/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
