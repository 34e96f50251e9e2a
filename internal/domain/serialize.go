package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SerializeReport marshals an AnalysisReport into an OutputEvent for the
// sink topic. The site name keys the message so reports for one site land
// on the same partition.
func SerializeReport(report AnalysisReport) (OutputEvent, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize analysis report: %w", err)
	}
	return OutputEvent{
		Key:   []byte(report.Site),
		Value: data,
		Headers: map[string]string{
			"site":        report.Site,
			"tank_count":  strconv.Itoa(len(report.Volumes)),
			"analyzed_at": report.AnalyzedAt.Format(time.RFC3339),
		},
	}, nil
}
