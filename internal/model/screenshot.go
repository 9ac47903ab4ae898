package model

// Screenshot is the metadata row for an image committed to object storage.
// The bytes themselves live in the storage bucket under a per-user dated path.
type Screenshot struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	ImageURL   string `json:"image_url"`
	CapturedAt string `json:"captured_at"`
}
