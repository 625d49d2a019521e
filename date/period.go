package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period used to group listings.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var periods = []Period{Daily, Weekly, Monthly, Quarterly, Yearly}

// periodNames holds the adjective and the noun of each period.
var periodNames = [...][2]string{
	Daily:     {"daily", "day"},
	Weekly:    {"weekly", "week"},
	Monthly:   {"monthly", "month"},
	Quarterly: {"quarterly", "quarter"},
	Yearly:    {"yearly", "year"},
}

func (p Period) String() string {
	if p < Daily || p > Yearly {
		return fmt.Sprintf("period(%d)", int(p))
	}
	return periodNames[p][0]
}

// ParsePeriod parses a period name, either the adjective (monthly) or the noun (month).
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range periods {
		if s == periodNames[p][0] || s == periodNames[p][1] {
			return p, nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q, want day, week, month, quarter or year", s)
}
