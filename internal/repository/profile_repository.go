package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gotrack/internal/model"
	"gotrack/internal/platform/supabase"
)

// profilesTable is the table store row layered on top of provider identities.
const profilesTable = "users"

// ProfileRepository defines persistence operations for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetRole(ctx context.Context, userID string) (model.Role, error)
}

type profileRepository struct {
	client *supabase.Client
}

// NewProfileRepository builds a repository backed by the platform table store.
func NewProfileRepository(client *supabase.Client) ProfileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	if _, err := r.client.Insert(ctx, profilesTable, profile); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetRole returns the profile role for userID, or "" when no profile row exists.
func (r *profileRepository) GetRole(ctx context.Context, userID string) (model.Role, error) {
	data, err := r.client.Select(ctx, profilesTable, "role", map[string]string{
		"id": supabase.Eq(userID),
	}, 1)
	if err != nil {
		return "", fmt.Errorf("query role: %w", err)
	}

	var rows []struct {
		Role model.Role `json:"role"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return "", fmt.Errorf("decode role rows: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Role, nil
}
