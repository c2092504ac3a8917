package services

import "fmt"

// FreeTierBudgetSeconds is the free-tier watch budget.
const FreeTierBudgetSeconds = 300

// WatchTimeGate is the pure timing policy converting elapsed watch
// seconds into remaining budget. It has no effect once the viewer is
// premium.
type WatchTimeGate struct {
	budget int
}

func NewWatchTimeGate(budgetSeconds int) *WatchTimeGate {
	if budgetSeconds <= 0 {
		budgetSeconds = FreeTierBudgetSeconds
	}
	return &WatchTimeGate{budget: budgetSeconds}
}

// Budget returns the configured budget in seconds.
func (g *WatchTimeGate) Budget() int {
	return g.budget
}

// Remaining returns max(0, budget - watched).
func (g *WatchTimeGate) Remaining(watchedSeconds int) int {
	remaining := g.budget - watchedSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the free-tier budget is exhausted. Always
// false for premium viewers.
func (g *WatchTimeGate) Expired(watchedSeconds int, premium bool) bool {
	if premium {
		return false
	}
	return g.Remaining(watchedSeconds) == 0
}

// FormatClock renders seconds as "m:ss", e.g. 300 -> "5:00", 1 -> "0:01".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
