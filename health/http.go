package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// ReportResponse is the JSON form of a Report.
type ReportResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Checks    []CheckResponse `json:"checks"`
}

// CheckResponse is the JSON form of a Result.
type CheckResponse struct {
	Name     string         `json:"name"`
	Status   string         `json:"status"`
	Message  string         `json:"message,omitempty"`
	Duration string         `json:"duration"`
	Details  map[string]any `json:"details,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// NewReportResponse converts a report for encoding.
func NewReportResponse(r Report, now time.Time) ReportResponse {
	out := ReportResponse{
		Status:    r.Status.String(),
		Timestamp: now.UTC().Format(time.RFC3339),
		Checks:    make([]CheckResponse, len(r.Results)),
	}
	for i, res := range r.Results {
		c := CheckResponse{
			Name:     res.Name,
			Status:   res.Status.String(),
			Message:  res.Message,
			Duration: res.Duration.String(),
			Details:  res.Details,
		}
		if res.Err != nil {
			c.Error = res.Err.Error()
		}
		out.Checks[i] = c
	}
	return out
}

// Handler serves the aggregated report as JSON. Unhealthy answers 503.
func Handler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := agg.Run(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if report.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(NewReportResponse(report, time.Now()))
	}
}
