package entity

// Role represents an authorization role.
// Stored as a scalar on the user; admin unlocks course/opportunity management.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}
