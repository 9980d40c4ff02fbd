package api

// ErrorResponse is the error body shape for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain informational response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ForgotPasswordRequest represents a password-reset initiation request.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents a reset-token redemption request.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse wraps the account returned by register and login.
type AuthResponse struct {
	User UserResponse `json:"user"`
}

// LikeRequest toggles a like counter up or down.
type LikeRequest struct {
	Increment *bool `json:"increment"`
}

// LikesResponse reports the counter after a like mutation.
type LikesResponse struct {
	LikesCount int `json:"likesCount"`
}

// ThumbnailRequest selects an image as the gallery thumbnail.
type ThumbnailRequest struct {
	ImageIndex *int `json:"imageIndex"`
}
