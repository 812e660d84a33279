package store

import (
	"context"
	"fmt"

	"github.com/monocle-dev/taskboard/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultActivityLimit = 10
	MaxActivityLimit     = 100
)

// ListActivity returns the newest entries first. An empty projectID lists
// activity across all projects.
func ListActivity(ctx context.Context, db *gorm.DB, projectID string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	query := db.WithContext(ctx).Preload("User")

	if projectID != "" {
		if _, err := GetProject(ctx, db, projectID); err != nil {
			return nil, err
		}
		query = query.Where("project_id = ?", projectID)
	}

	var entries []models.ActivityLog

	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	return entries, nil
}
