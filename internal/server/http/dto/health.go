package dto

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status string `json:"status"`
}
