package dto

// CheckoutResultResponse echoes the outcome the customer was redirected with.
type CheckoutResultResponse struct {
	Status string `json:"status"`
}
