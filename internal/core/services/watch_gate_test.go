package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchTimeGate_Remaining(t *testing.T) {
	gate := NewWatchTimeGate(300)

	tests := []struct {
		name    string
		watched int
		want    int
	}{
		{name: "nothing watched", watched: 0, want: 300},
		{name: "partially watched", watched: 299, want: 1},
		{name: "exactly exhausted", watched: 300, want: 0},
		{name: "past the budget", watched: 500, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Remaining(tt.watched))
		})
	}
}

func TestWatchTimeGate_Expired(t *testing.T) {
	gate := NewWatchTimeGate(300)

	assert.False(t, gate.Expired(299, false))
	assert.True(t, gate.Expired(300, false))
	assert.True(t, gate.Expired(301, false))

	// Premium viewers never expire.
	assert.False(t, gate.Expired(300, true))
	assert.False(t, gate.Expired(10000, true))
}

func TestWatchTimeGate_DefaultBudget(t *testing.T) {
	assert.Equal(t, FreeTierBudgetSeconds, NewWatchTimeGate(0).Budget())
	assert.Equal(t, FreeTierBudgetSeconds, NewWatchTimeGate(-5).Budget())
	assert.Equal(t, 60, NewWatchTimeGate(60).Budget())
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{300, "5:00"},
		{299, "4:59"},
		{61, "1:01"},
		{60, "1:00"},
		{1, "0:01"},
		{0, "0:00"},
		{-7, "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds))
	}
}
