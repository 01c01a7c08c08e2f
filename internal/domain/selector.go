package domain

import (
	"cmp"
	"slices"
)

// SelectStrongest returns the highest-magnitude event that is inside both the
// trailing window and the radius described by criteria.
//
// Events are visited in descending magnitude order with a running threshold:
// anything weaker than the current best is skipped before its distance is
// computed. Events that tie the current best are still checked but never
// replace it, so the first qualifying event in stable (feed) order wins.
// The input slice is not modified.
func SelectStrongest(events []Earthquake, criteria SearchCriteria) SearchResult {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Earthquake) int {
		return cmp.Compare(b.Magnitude, a.Magnitude)
	})

	threshold := 0.0
	result := NoneFound

	for _, event := range sorted {
		if !WithinWindow(event.OccurredAtMillis, criteria.WindowDays, criteria.NowMillis) || event.Magnitude < threshold {
			continue
		}
		if !WithinRadius(criteria.Origin, event.Epicenter, criteria.RadiusMiles) {
			continue
		}
		if result.Found && event.Magnitude <= threshold {
			continue
		}
		result = Found(event)
		threshold = event.Magnitude
	}

	return result
}
