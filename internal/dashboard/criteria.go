package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/chrisdamba/bitesdash/internal/models"
)

const DateLayout = "2006-01-02"

// CriteriaInput is the raw filter selection as received from a flag set or
// a query string.
type CriteriaInput struct {
	From     string
	To       string
	Cities   []string
	Zones    []string
	Cuisines []string
	Tiers    []string
}

// ParseCriteria validates the dates and normalises the categorical lists.
// Each list entry may itself hold comma-separated values.
func ParseCriteria(in CriteriaInput) (models.FilterCriteria, error) {
	var c models.FilterCriteria
	var err error
	if c.DateRange.Start, err = parseDate("from", in.From); err != nil {
		return c, err
	}
	if c.DateRange.End, err = parseDate("to", in.To); err != nil {
		return c, err
	}
	c.Cities = SplitValues(in.Cities)
	c.Zones = SplitValues(in.Zones)
	c.Cuisines = SplitValues(in.Cuisines)
	c.Tiers = SplitValues(in.Tiers)
	return c, nil
}

// SplitValues flattens comma-separated entries, dropping blanks.
func SplitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseDate(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q, want YYYY-MM-DD", name, v)
	}
	return t, nil
}
