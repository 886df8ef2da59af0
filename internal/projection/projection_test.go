package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectedOnTime(t *testing.T) {
	tests := []struct {
		name   string
		onTime float64
		prep   int
		want   float64
	}{
		{"default slider", 80.0, 5, 82.5},
		{"capped at 100", 97.0, 15, 100.0},
		{"exactly 100", 92.5, 15, 100.0},
		{"from zero", 0, 1, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProjectedOnTime(tt.onTime, tt.prep), 1e-9)
		})
	}
}

func TestProjectedGMVRecovery(t *testing.T) {
	assert.InDelta(t, 10000.0, ProjectedGMVRecovery(100000, 10), 1e-9)
	assert.Zero(t, ProjectedGMVRecovery(0, 30))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, ClampPrepReduction(0))
	assert.Equal(t, 15, ClampPrepReduction(40))
	assert.Equal(t, 7, ClampPrepReduction(7))
	assert.Equal(t, 5, ClampCancellationReduction(-2))
	assert.Equal(t, 30, ClampCancellationReduction(31))
	assert.Equal(t, DefaultCancellationReduction, ClampCancellationReduction(DefaultCancellationReduction))
}
