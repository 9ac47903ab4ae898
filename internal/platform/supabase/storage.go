package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultSignedURLExpiry is the lifetime in seconds of signed URLs for
// private buckets.
const DefaultSignedURLExpiry = 3600

// UploadObject writes data to bucket at path. Upsert is disabled: an
// existing object at the same path is never overwritten.
func (c *Client) UploadObject(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	_, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/storage/v1/object/" + bucket + "/" + path,
		body:        data,
		contentType: contentType,
		headers:     map[string]string{"x-upsert": "false"},
	})
	return err
}

// RemoveObject deletes the object at path from bucket.
func (c *Client) RemoveObject(ctx context.Context, bucket, path string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/storage/v1/object/" + bucket + "/" + path,
	})
	return err
}

// PublicObjectURL returns the stable URL of an object in a public bucket.
// No round-trip is made; the URL is derived from the platform base URL.
func (c *Client) PublicObjectURL(bucket, path string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + path
}

// SignObjectURL creates a time-limited URL for an object in a private
// bucket. expiresIn is in seconds; zero means DefaultSignedURLExpiry.
func (c *Client) SignObjectURL(ctx context.Context, bucket, path string, expiresIn int) (string, error) {
	if expiresIn <= 0 {
		expiresIn = DefaultSignedURLExpiry
	}

	body, err := json.Marshal(map[string]int{"expiresIn": expiresIn})
	if err != nil {
		return "", fmt.Errorf("marshal sign request: %w", err)
	}

	data, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/storage/v1/object/sign/" + bucket + "/" + path,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode signed url: %w", err)
	}
	if resp.SignedURL == "" {
		return "", &APIError{Status: http.StatusInternalServerError, Message: "sign returned no url"}
	}

	// The platform returns a path relative to the storage API root.
	return c.baseURL + "/storage/v1" + ensureLeadingSlash(resp.SignedURL), nil
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
