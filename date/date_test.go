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
		want      Date
		expectErr bool
	}{
		{"ISO date", "2024-02-05", New(2024, time.February, 5), false},
		{"Single digit month and day", "2024-2-5", New(2024, time.February, 5), false},
		{"Invalid month", "2024-13-05", Date{}, true},
		{"Not a date", "yesterday", Date{}, true},
		{"Empty string", "", Date{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			hasErr := err != nil
			if hasErr != tc.expectErr {
				t.Fatalf("Parse(%q) returned error: %v, want error: %v", tc.in, err, tc.expectErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAddNormalizes(t *testing.T) {
	testCases := []struct {
		name string
		d    Date
		days int
		want Date
	}{
		{"Within month", New(2024, time.February, 5), 3, New(2024, time.February, 8)},
		{"Across month end", New(2024, time.January, 31), 1, New(2024, time.February, 1)},
		{"Leap day", New(2024, time.February, 28), 1, New(2024, time.February, 29)},
		{"Across year end", New(2023, time.December, 31), 1, New(2024, time.January, 1)},
		{"Backward", New(2024, time.March, 1), -1, New(2024, time.February, 29)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Add(tc.days); got != tc.want {
				t.Errorf("%v.Add(%d) = %v, want %v", tc.d, tc.days, got, tc.want)
			}
		})
	}
}

func TestSub(t *testing.T) {
	a := New(2024, time.February, 5)
	b := New(2024, time.February, 16)
	if got := b.Sub(a); got != 11 {
		t.Errorf("Sub() = %d, want 11", got)
	}
	if got := a.Sub(b); got != -11 {
		t.Errorf("Sub() = %d, want -11", got)
	}
	if got := a.Sub(a); got != 0 {
		t.Errorf("Sub() = %d, want 0", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := New(2024, time.February, 5)
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(raw) != `"2024-02-05"` {
		t.Errorf("Marshal() = %s, want %q", raw, "2024-02-05")
	}
	var out Date
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}
