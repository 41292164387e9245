package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest signs up a staff member together with their school
type RegisterRequest struct {
	FirstName       string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName        string  `json:"last_name" binding:"required,min=2,max=100"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	PasswordConfirm string  `json:"password_confirm" binding:"required,eqfield=Password"`
	Phone           *string `json:"phone" binding:"omitempty,max=50"`
	SchoolName      string  `json:"school_name" binding:"required,min=2,max=255"`
	SchoolAddress   string  `json:"school_address" binding:"omitempty,max=500"`
	SchoolPhone     string  `json:"school_phone" binding:"omitempty,max=50"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
