// Package report renders search reports for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-radius/internal/domain"
)

// NoEarthquakes is printed when nothing qualified.
const NoEarthquakes = "[ No Earthquakes !!! ]"

// Header describes the search that was run.
func Header(criteria domain.SearchCriteria) string {
	return fmt.Sprintf("Highest magnitude earthquake located within %s miles from (%s, %s) in last %s days:",
		formatNumber(criteria.RadiusMiles),
		formatNumber(criteria.Origin.Lat),
		formatNumber(criteria.Origin.Lon),
		formatNumber(criteria.WindowDays),
	)
}

// Line describes the selected event, or NoEarthquakes.
func Line(result domain.SearchResult) string {
	if !result.Found {
		return NoEarthquakes
	}
	return fmt.Sprintf("[ Earthquake of Magnitude %s at %s ]", formatMagnitude(result.Event.Magnitude), result.Event.Place)
}

// Write prints the header and result lines.
func Write(w io.Writer, r domain.SearchReport) error {
	_, err := fmt.Fprintf(w, "%s\n\t%s\n", Header(r.Criteria), Line(r.Result))
	return err
}

// WriteJSON prints the full report as indented JSON.
func WriteJSON(w io.Writer, r domain.SearchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatMagnitude always shows a decimal place so 5 reads as 5.0.
func formatMagnitude(m float64) string {
	s := formatNumber(m)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
