package model

// Roles a user account can carry.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// AuthResult is what login/register/refresh resolve to. Token may be empty on
// register — the backend requires an explicit login afterwards.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type ProfileUpdate struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
