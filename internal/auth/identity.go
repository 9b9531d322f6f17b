package auth

// Identity is the verified user returned by credential checks. It never carries password material.
type Identity struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
