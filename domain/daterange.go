package domain

import (
	"errors"
	"time"
)

// Date truncates t to a calendar date in UTC. All ledger and pricing math
// operates on dates produced by this function.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a half-open interval [Start, End): the start date is included,
// the end date is not, so adjacent ranges tile a calendar without overlap.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start, end = Date(start), Date(end)
	if end.Before(start) {
		return DateRange{}, errors.New("end date must be on or after start date")
	}

	return DateRange{Start: start, End: end}, nil
}

// NewStay is NewDateRange with the additional requirement of at least one
// night; a zero-length range is not a stay.
func NewStay(checkIn, checkOut time.Time) (DateRange, error) {
	r, err := NewDateRange(checkIn, checkOut)
	if err != nil {
		return DateRange{}, err
	}

	if r.Nights() < 1 {
		return DateRange{}, errors.New("stay must be at least one night")
	}

	return r, nil
}

// Overlaps is the standard half-open overlap test.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r DateRange) ContainsDate(d time.Time) bool {
	d = Date(d)

	return !d.Before(r.Start) && d.Before(r.End)
}

func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Dates lists every calendar date covered by the range, in order.
func (r DateRange) Dates() []time.Time {
	dates := make([]time.Time, 0, r.Nights())
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	return dates
}

// NightRange is the one-night range [d, d+1) used for per-night rule matching.
func NightRange(d time.Time) DateRange {
	d = Date(d)

	return DateRange{Start: d, End: d.AddDate(0, 0, 1)}
}
