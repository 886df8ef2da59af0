package models

import "time"

// DateRange is an inclusive range of calendar dates. Only the date
// component of Start and End is considered.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether neither bound is set, meaning no date restriction.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Valid reports whether both bounds are set and Start is not after End.
func (r DateRange) Valid() bool {
	if r.Start.IsZero() || r.End.IsZero() {
		return false
	}
	return !DateOf(r.Start).After(DateOf(r.End))
}

// Contains reports whether the calendar date of t lies within the range.
// A null t is never contained.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() || !r.Valid() {
		return false
	}
	d := DateOf(t)
	return !d.Before(DateOf(r.Start)) && !d.After(DateOf(r.End))
}

// FilterCriteria selects a subset of the fact table. An empty slice imposes
// no restriction on its dimension.
type FilterCriteria struct {
	DateRange DateRange `json:"date_range"`
	Cities    []string  `json:"cities,omitempty"`
	Zones     []string  `json:"zones,omitempty"`
	Cuisines  []string  `json:"cuisines,omitempty"`
	Tiers     []string  `json:"tiers,omitempty"`
}

// DateOf truncates t to midnight UTC of its own calendar date.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
