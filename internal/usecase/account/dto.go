package account

// RegisterRequest represents the request payload for creating a new account.
type RegisterRequest struct {
	Name        string `validate:"required,min=2,max=100"`
	Email       string `validate:"required,email"`
	PhoneNumber string `validate:"required"`
	Password    string `validate:"required,min=6"`
}

// RegisterResponse is the public projection of a newly created account.
// It never carries the password or a token.
type RegisterResponse struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
}

// LoginRequest represents the request payload for authenticating a user.
type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// UserInfo is the authenticated user summary returned alongside a token.
type UserInfo struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string
	User  UserInfo
}

// AdminLoginRequest represents the admin console login payload.
// The external shape is a bare password in, a token out.
type AdminLoginRequest struct {
	Password string `validate:"required"`
}

// AdminLoginResponse carries the issued admin token.
type AdminLoginResponse struct {
	Token string
}
