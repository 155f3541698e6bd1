package cancel_booking

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Email string `json:"email" validate:"required,email"`
}
