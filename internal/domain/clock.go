package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze "now" via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic windows.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for search criteria. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// NowMillis returns the current time in epoch milliseconds.
func NowMillis() int64 {
	return clock.Now().UnixMilli()
}

// Clock returns the current time source, for tickers that must follow SetClock.
func Clock() clockwork.Clock {
	return clock
}
