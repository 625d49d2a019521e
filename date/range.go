package date

import "fmt"

// Range is a span of days, both ends included.
type Range struct{ From, To Date }

// NewRange returns the range of the period that contains d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Between returns the range from..to. It fails when to is before from.
func Between(from, to Date) (Range, error) {
	if to.Before(from) {
		return Range{}, fmt.Errorf("range ends on %s before it starts on %s", to, from)
	}
	return Range{From: from, To: to}, nil
}

// Contains reports whether d is in r.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Period returns the calendar period r spans exactly, if any.
func (r Range) Period() (Period, bool) {
	for _, p := range periods {
		if NewRange(r.From, p) == r {
			return p, true
		}
	}
	return 0, false
}

// Identifier is a short name of r: 2025-03-12, 2025-W11, 2025-03, 2025-Q1, 2025,
// or from_to for any other range.
func (r Range) Identifier() string {
	p, ok := r.Period()
	switch {
	case !ok:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	case p == Weekly:
		_, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case p == Monthly:
		return r.From.Format("2006-01")
	case p == Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case p == Yearly:
		return r.From.Format("2006")
	}
	return r.From.String()
}
