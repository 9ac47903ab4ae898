package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gotrack/internal/errors"
	"gotrack/internal/model"
	"gotrack/internal/platform/supabase"
)

const screenshotsTable = "screenshots"

// ScreenshotRepository defines persistence operations for screenshot metadata.
type ScreenshotRepository interface {
	Create(ctx context.Context, shot *model.Screenshot) (*model.Screenshot, error)
}

type screenshotRepository struct {
	client *supabase.Client
}

// NewScreenshotRepository builds a repository backed by the platform table store.
func NewScreenshotRepository(client *supabase.Client) ScreenshotRepository {
	return &screenshotRepository{client: client}
}

type screenshotInsert struct {
	UserID     string `json:"user_id"`
	ImageURL   string `json:"image_url"`
	CapturedAt string `json:"captured_at"`
}

func (r *screenshotRepository) Create(ctx context.Context, shot *model.Screenshot) (*model.Screenshot, error) {
	data, err := r.client.Insert(ctx, screenshotsTable, screenshotInsert{
		UserID:     shot.UserID,
		ImageURL:   shot.ImageURL,
		CapturedAt: shot.CapturedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: insert screenshot: %v", errors.ErrDatabase, err)
	}

	var rows []model.Screenshot
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode screenshot rows: %v", errors.ErrDatabase, err)
	}
	if len(rows) == 0 {
		// Store accepted the insert but returned nothing; echo the input back.
		return shot, nil
	}
	return &rows[0], nil
}
