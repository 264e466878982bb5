package date

import (
	"encoding/json"
	"iter"
	"slices"
	"sort"
)

// History stores a chronological series of values, each associated with a
// specific date. It ensures that dates are unique and the series is always
// sorted.
type History[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

// Len returns the number of points in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// At returns the i-th point in chronological order.
func (h *History[T]) At(i int) (day Date, value T) {
	return h.days[i], h.values[i]
}

// Clear removes all points from the history.
func (h *History[T]) Clear() {
	h.days = h.days[:0]
	h.values = h.values[:0]
}

// chronological is a private implementation to keep the history sorted.
type chronological[T float32 | float64 | string] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.days[i].time().Before(s.days[j].time()) }

func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

func (h *History[T]) sort() { sort.Sort(chronological[T]{h}) }

// Append adds a point to the history.
//
// An existing value at that date is overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	if i := slices.Index(h.days, on); i >= 0 {
		// A point already exists at that date, the last write wins.
		h.values[i] = q
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, q)
	h.sort()
	return h
}

// Values returns an iterator over all date/value pairs in the history, in
// chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true, or the zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	var value T
	i := slices.Index(h.days, day)
	if i >= 0 {
		return h.values[i], true
	}
	return value, false
}

// jpoint is the JSON representation of a single observation.
type jpoint[T any] struct {
	On Date `json:"on"`
	V  T    `json:"v"`
}

// MarshalJSON encodes the history as an ordered array of points, so a whole
// dataset can be persisted in the durable cache.
func (h History[T]) MarshalJSON() ([]byte, error) {
	points := make([]jpoint[T], 0, len(h.days))
	for i, on := range h.days {
		points = append(points, jpoint[T]{On: on, V: h.values[i]})
	}
	return json.Marshal(points)
}

// UnmarshalJSON decodes an array of points, restoring chronological order
// whatever the stored order was.
func (h *History[T]) UnmarshalJSON(data []byte) error {
	var points []jpoint[T]
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	h.Clear()
	for _, p := range points {
		h.Append(p.On, p.V)
	}
	return nil
}
