package auth

// Identity is an authenticated principal as known to the external auth
// provider. The ID is the provider-assigned opaque user id.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
