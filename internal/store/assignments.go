package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func ListAssignments(ctx context.Context, db *gorm.DB, taskID string) ([]models.TaskAssignment, error) {
	if ok, err := exists(ctx, db, &models.Task{}, "id = ?", taskID); err != nil {
		return nil, fmt.Errorf("failed to check task: %w", err)
	} else if !ok {
		return nil, apperr.NotFound("task")
	}

	var assignments []models.TaskAssignment

	err := db.WithContext(ctx).
		Preload("User").
		Preload("Assigner").
		Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&assignments).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

// AssignUser adds userID as an additional assignee of the task. Assigning the
// same user twice is a conflict.
func AssignUser(ctx context.Context, db *gorm.DB, actorID, taskID, userID string) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ?", taskID).First(&task).Error; err != nil {
			return notFound(err, "task")
		}

		user, err := GetUser(ctx, tx, userID)
		if errors.Is(err, apperr.ErrNotFound) {
			verr := apperr.NewValidationError()
			verr.Add("user_id", "The selected user id is invalid.")
			return verr
		}
		if err != nil {
			return err
		}

		assigner, err := GetUser(ctx, tx, actorID)
		if err != nil {
			return err
		}

		dup, err := exists(ctx, tx, &models.TaskAssignment{}, "task_id = ? AND user_id = ?", taskID, userID)
		if err != nil {
			return fmt.Errorf("failed to check assignment: %w", err)
		}
		if dup {
			return apperr.Conflict("%s is already assigned to this task", user.Name)
		}

		assignment = models.TaskAssignment{
			TaskID:     taskID,
			UserID:     userID,
			AssignedBy: actorID,
		}

		if err := tx.Omit(clause.Associations).Create(&assignment).Error; err != nil {
			if isDuplicate(err) {
				return apperr.Conflict("%s is already assigned to this task", user.Name)
			}
			return fmt.Errorf("failed to assign user: %w", err)
		}
		assignment.User = *user
		assignment.Assigner = *assigner

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityTaskAssigned,
			Description:  fmt.Sprintf("Assigned %s to %q", user.Name, task.Title),
			TaskID:       strPtr(task.ID),
			ProjectID:    task.ProjectID,
		}, map[string]string{"user_id": userID})
	})

	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func Unassign(ctx context.Context, db *gorm.DB, actorID, taskID, assignmentID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment models.TaskAssignment

		err := tx.Preload("User").Preload("Task").
			Where("id = ? AND task_id = ?", assignmentID, taskID).
			First(&assignment).Error
		if err != nil {
			return notFound(err, "assignment")
		}

		if err := tx.Where("id = ?", assignment.ID).Delete(&models.TaskAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to remove assignment: %w", err)
		}

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityTaskUnassigned,
			Description:  fmt.Sprintf("Unassigned %s from %q", assignment.User.Name, assignment.Task.Title),
			TaskID:       strPtr(assignment.TaskID),
			ProjectID:    assignment.Task.ProjectID,
		}, map[string]string{"user_id": assignment.UserID})
	})
}
