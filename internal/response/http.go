package response

type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	// DegradedData is set when the live feed was unavailable and the
	// payload was computed with execution figures zeroed.
	DegradedData bool `json:"degraded_data,omitempty"`
	Data         T    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
