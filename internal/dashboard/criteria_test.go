package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria(CriteriaInput{
		From:   "2024-01-01",
		To:     "2024-01-31",
		Cities: []string{"Dubai, Abu Dhabi", "", "Sharjah"},
		Tiers:  []string{" Premium "},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c.DateRange.Start)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), c.DateRange.End)
	assert.Equal(t, []string{"Dubai", "Abu Dhabi", "Sharjah"}, c.Cities)
	assert.Equal(t, []string{"Premium"}, c.Tiers)
	assert.Nil(t, c.Zones)

	_, err = ParseCriteria(CriteriaInput{From: "01/02/2024"})
	assert.ErrorContains(t, err, "invalid from date")
}
