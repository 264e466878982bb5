package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHistoryAppendKeepsOrder(t *testing.T) {
	var h History[float64]
	h.Append(NewMonth(2020, time.March), 3)
	h.Append(NewMonth(2020, time.January), 1)
	h.Append(NewMonth(2020, time.February), 2)

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	want := []float64{1, 2, 3}
	i := 0
	var prev Date
	for on, v := range h.Values() {
		if v != want[i] {
			t.Errorf("value %d = %v, want %v", i, v, want[i])
		}
		if i > 0 && !prev.Before(on) {
			t.Errorf("dates out of order: %s then %s", prev, on)
		}
		prev = on
		i++
	}
}

func TestHistoryAppendOverwrites(t *testing.T) {
	var h History[float64]
	on := NewMonth(2020, time.January)
	h.Append(on, 1).Append(on, 42)

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if v, ok := h.Get(on); !ok || v != 42 {
		t.Errorf("Get(%s) = %v,%v, want 42,true", on, v, ok)
	}
}

func TestHistoryLatest(t *testing.T) {
	var h History[float64]
	if on, v := h.Latest(); !on.IsZero() || v != 0 {
		t.Errorf("empty Latest() = %s,%v, want zero values", on, v)
	}
	h.Append(NewMonth(2020, time.January), 1)
	h.Append(NewMonth(2020, time.February), 2)
	if on, v := h.Latest(); on != NewMonth(2020, time.February) || v != 2 {
		t.Errorf("Latest() = %s,%v, want 2020-02,2", on, v)
	}
}

func TestHistoryJSON(t *testing.T) {
	var h History[float64]
	h.Append(NewMonth(2020, time.January), 300000)
	h.Append(NewMonth(2020, time.February), 305000)

	b, err := json.Marshal(&h)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back History[float64]
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("round trip Len() = %d, want 2", back.Len())
	}
	if v, ok := back.Get(NewMonth(2020, time.February)); !ok || v != 305000 {
		t.Errorf("round trip Get(2020-02) = %v,%v, want 305000,true", v, ok)
	}
}
