// Package domain models earthquake events from the USGS summary feed and the
// search that picks the strongest recent one near a reference point.
//
// # Data Source
//
// Events come from the USGS GeoJSON summary feeds, e.g.
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_month.geojson.
// The feed adapter converts each GeoJSON feature into an [Earthquake] before
// any filtering happens; features without a magnitude, time, or coordinates
// are dropped there and never reach this package.
//
// # Feed Conventions
//
// Coordinates:
//
//	GeoJSON order is [longitude, latitude, depth_km]. [Earthquake.Epicenter]
//	stores latitude first.
//
// Time:
//
//	properties.time is epoch milliseconds (UTC). The window check works on
//	raw milliseconds, never on wall-clock dates.
//
// Magnitude:
//
//	properties.mag is a float on whatever scale the network reported (ml, md,
//	mb, mww...). Small local events can be negative.
//
// # Search
//
// [SelectStrongest] sorts by magnitude descending and keeps a running
// threshold so that once a qualifying event is found, weaker events are
// skipped without a distance computation. Both the distance and the window
// boundaries are open: an event exactly on the radius or exactly windowDays
// old does not qualify.
//
// The threshold starts at zero, so events with a negative magnitude are never
// reported.
package domain
