package remove_from_waitlist

// RemoveRequest HTTP request model
type RemoveRequest struct {
	Email string `json:"email" validate:"required,email"`
}
