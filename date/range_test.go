package date

import (
	"testing"
	"time"
)

func TestRangeContains(t *testing.T) {
	r := NewRange(New(2025, time.March, 15), Monthly)
	testCases := []struct {
		on   Date
		want bool
	}{
		{New(2025, time.February, 28), false},
		{New(2025, time.March, 1), true},
		{New(2025, time.March, 31), true},
		{New(2025, time.April, 1), false},
	}
	for _, tc := range testCases {
		if got := r.Contains(tc.on); got != tc.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", r, tc.on, got, tc.want)
		}
	}
}

func TestRangeIdentifier(t *testing.T) {
	d := New(2025, time.February, 12)
	testCases := []struct {
		r    Range
		want string
	}{
		{NewRange(d, Daily), "2025-02-12"},
		{NewRange(d, Weekly), "2025-W07"},
		{NewRange(d, Monthly), "2025-02"},
		{NewRange(d, Quarterly), "2025-Q1"},
		{NewRange(d, Yearly), "2025"},
		{Range{From: d, To: d.Add(3)}, "2025-02-12_2025-02-15"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.r.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"day": Daily, "Week": Weekly, "monthly": Monthly, "quarter": Quarterly, "YEAR": Yearly} {
		got, err := ParsePeriod(in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Errorf("ParsePeriod(%q) succeeded, want an error", "fortnight")
	}
}

func TestBetween(t *testing.T) {
	from, to := New(2025, time.March, 10), New(2025, time.March, 12)
	r, err := Between(from, to)
	if err != nil {
		t.Fatalf("Between() failed: %v", err)
	}
	if _, ok := r.Period(); ok {
		t.Errorf("%v.Period() is a standard period, want none", r)
	}
	if _, err := Between(to, from); err == nil {
		t.Errorf("Between(%v, %v) succeeded, want an error", to, from)
	}
	if r, _ := Between(from, from); r != NewRange(from, Daily) {
		t.Errorf("Between(d, d) = %v, want the day", r)
	}
}
