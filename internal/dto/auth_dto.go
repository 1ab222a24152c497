package dto

// RegisterRequest is bound from the multipart form of POST /users/register.
// Owner registration creates the restaurant and provisions its tenant tables;
// manager/staff registration joins an existing restaurant via its secret code.
type RegisterRequest struct {
	Name     string `form:"name"     validate:"required,min=2"`
	Email    string `form:"email"    validate:"required,email"`
	Phone    string `form:"phone"    validate:"omitempty,min=6"`
	Password string `form:"password" validate:"required,min=8"`
	Role     string `form:"role"     validate:"required,oneof=owner manager staff"`

	// Owner-only fields — the new restaurant's profile
	RestaurantName string `form:"restaurant_name" validate:"required_if=Role owner"`
	OwnerName      string `form:"owner_name"      validate:"required_if=Role owner"`
	District       string `form:"district"`
	SecretCode     string `form:"secret_code"     validate:"required,min=4"`

	// Manager/staff-only: the restaurant being joined
	RestaurantID int64 `form:"restaurant_id" validate:"required_unless=Role owner"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse never carries the password hash or the tenant secret.
type UserResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	RestaurantID int64  `json:"restaurant_id"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
}

// RestaurantResponse is the tenant profile for GET /restaurants/me.
// SecretCode is populated for the owner role only.
type RestaurantResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	OwnerName  string `json:"owner_name"`
	Phone      string `json:"phone,omitempty"`
	District   string `json:"district,omitempty"`
	SecretCode string `json:"secret_code,omitempty"`
}
