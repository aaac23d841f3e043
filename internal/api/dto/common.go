package dto

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Code    int    `json:"code"`
}

// MessageResponse is a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports backend reachability
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Time    string `json:"time"`
}
