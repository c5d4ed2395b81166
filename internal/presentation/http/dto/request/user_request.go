package request

// CreateUserRequest represents a new account
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Location string `json:"location"`
}

// ResetPasswordRequest represents a password reset. CurrentPassword is only
// checked when the target account is a master.
type ResetPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// AssignLocationRequest represents a billing location assignment
type AssignLocationRequest struct {
	Location string `json:"location" binding:"required"`
}
