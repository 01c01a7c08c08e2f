package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SerializeReport marshals a search report for the sink topic, keyed by run ID.
func SerializeReport(report SearchReport) (OutputEvent, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize search report: %w", err)
	}
	return OutputEvent{
		Key:   []byte(report.RunID),
		Value: data,
		Headers: map[string]string{
			"found":        strconv.FormatBool(report.Result.Found),
			"completed_at": report.CompletedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}
