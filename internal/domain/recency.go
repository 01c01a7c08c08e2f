package domain

// millisPerDay converts window lengths given in (possibly fractional) days.
const millisPerDay = 24 * 60 * 60 * 1000

// WithinWindow reports whether an event at eventMillis happened less than
// windowDays before nowMillis. Events stamped after nowMillis always qualify.
func WithinWindow(eventMillis int64, windowDays float64, nowMillis int64) bool {
	windowMillis := windowDays * millisPerDay
	return float64(nowMillis-eventMillis) < windowMillis
}
