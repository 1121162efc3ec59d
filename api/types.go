package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler     projectHandler
	scrollImageHandler scrollImageHandler
	videoHandler       videoHandler
	authHandler        authHandler
	healthHandler      healthHandler
}

// ErrorResponse represents an error response from the API.
// Error is only set for server errors and carries the failed operation, never a raw store error.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
