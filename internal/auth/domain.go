package auth

// User is an account that can sign in to the dashboard.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
}
