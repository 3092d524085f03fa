package api

import "github.com/amakhet/soil-api/internal/model"

// AnalysisRequest is the POST /api/soil-analysis body.
type AnalysisRequest struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	BufferMeters *int     `json:"buffer_meters,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
}

// AnalysisResponse wraps a report in the success envelope.
type AnalysisResponse struct {
	Success   bool          `json:"success"`
	Data      *model.Report `json:"data"`
	Message   string        `json:"message"`
	Timestamp string        `json:"timestamp"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
