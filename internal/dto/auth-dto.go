package dto

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"-"`
	NewPassword string `json:"password"`
}

// AuthResponse is the verified token claim set stashed in fiber locals.
type AuthResponse struct {
	UserID uint
	Role   string
	Email  string
	Expiry float64
	Iat    float64
}
