// Package store holds the explicit query functions behind the handlers.
// Every function takes the request context and a *gorm.DB so callers control
// the connection (or transaction) the work runs on; nothing is lazily loaded.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notFound converts gorm's missing-row error into the apperr taxonomy.
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity)
	}
	return fmt.Errorf("failed to load %s: %w", entity, err)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// appendActivity writes an audit row on the given transaction.
func appendActivity(ctx context.Context, tx *gorm.DB, entry models.ActivityLog, meta map[string]string) error {
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to encode activity metadata: %w", err)
		}
		entry.Metadata = datatypes.JSON(raw)
	}

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record %s activity: %w", entry.ActivityType, err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
