package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: day(2024, 1, 1), End: day(2024, 1, 31)}

	assert.True(t, r.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Time{}))

	reversed := DateRange{Start: day(2024, 2, 1), End: day(2024, 1, 1)}
	assert.False(t, reversed.Valid())
	assert.False(t, reversed.Contains(day(2024, 1, 15)))

	halfOpen := DateRange{Start: day(2024, 1, 1)}
	assert.False(t, halfOpen.IsZero())
	assert.False(t, halfOpen.Valid())

	assert.True(t, DateRange{}.IsZero())
}
