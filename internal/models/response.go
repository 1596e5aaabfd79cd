package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// DecliningTrendsResponse represents the declining MIME types response
type DecliningTrendsResponse struct {
	GeneratedAt string                 `json:"generated_at"`
	Source      string                 `json:"source"`
	Summary     []DeclineRecord        `json:"summary"` // steepest declines first, at most 10
	Declining   map[string]MimeHistory `json:"declining"`
	Count       int                    `json:"count"`
}

// ForecastPointView represents a single forecast prediction in responses
type ForecastPointView struct {
	Period     int     `json:"period"`
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound,omitempty"`
	UpperBound float64 `json:"upper_bound,omitempty"`
}

// MimeForecastResponse represents a forecast for one MIME type's usage
type MimeForecastResponse struct {
	MimeType    string              `json:"mime_type"`
	Method      string              `json:"method"`
	History     MimeHistory         `json:"history"`
	Predictions []ForecastPointView `json:"predictions"`
	ModelInfo   interface{}         `json:"model_info,omitempty"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
