package model

// Role is the access tier stored on a user profile.
type Role string

const (
	// RoleEmployee is the default role for registered users.
	RoleEmployee Role = "employee"
	// RoleSuperuser may assign tasks and promote other users.
	RoleSuperuser Role = "superuser"
)

// Profile is the role/metadata row layered on top of a provider identity.
// The row id equals the provider-assigned user id.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
}
