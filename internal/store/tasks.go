package store

import (
	"context"
	"fmt"
	"time"

	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpcomingLimit is how many tasks the upcoming list returns.
const UpcomingLimit = 4

type TaskInput struct {
	Title      string
	Status     models.TaskStatus
	Priority   models.TaskPriority
	DueDate    time.Time
	ProjectID  string
	AssigneeID string
}

type TaskStats struct {
	Completed  int64 `json:"completed"`
	InReview   int64 `json:"inReview"`
	InProgress int64 `json:"inProgress"`
	Overdue    int64 `json:"overdue"`
}

func withTaskRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("Project").Preload("Assignee")
}

// ListTasks returns every task with its project and assignee loaded.
func ListTasks(ctx context.Context, db *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task

	if err := withTaskRefs(db.WithContext(ctx)).Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func GetTask(ctx context.Context, db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task

	if err := withTaskRefs(db.WithContext(ctx)).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, notFound(err, "task")
	}

	return &task, nil
}

// checkTaskRefs verifies the referenced project and assignee exist, reporting
// missing ones as field errors.
func checkTaskRefs(ctx context.Context, db *gorm.DB, in TaskInput) error {
	verr := apperr.NewValidationError()

	ok, err := exists(ctx, db, &models.Project{}, "id = ?", in.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if !ok {
		verr.Add("project_id", "The selected project id is invalid.")
	}

	ok, err = exists(ctx, db, &models.User{}, "id = ?", in.AssigneeID)
	if err != nil {
		return fmt.Errorf("failed to check assignee: %w", err)
	}
	if !ok {
		verr.Add("assignee_id", "The selected assignee id is invalid.")
	}

	return verr.OrNil()
}

func CreateTask(ctx context.Context, db *gorm.DB, actorID string, in TaskInput) (*models.Task, error) {
	task := models.Task{
		Title:      in.Title,
		Status:     in.Status,
		Priority:   in.Priority,
		DueDate:    in.DueDate,
		ProjectID:  in.ProjectID,
		AssigneeID: in.AssigneeID,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkTaskRefs(ctx, tx, in); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&task).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityTaskCreated,
			Description:  fmt.Sprintf("Created task %q", task.Title),
			TaskID:       strPtr(task.ID),
			ProjectID:    task.ProjectID,
		}, nil)
	})

	if err != nil {
		return nil, err
	}

	return GetTask(ctx, db, task.ID)
}

// UpdateTask replaces every field of the task. A transition into Completed
// is logged as task_completed rather than task_updated.
func UpdateTask(ctx context.Context, db *gorm.DB, actorID, id string, in TaskInput) (*models.Task, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task

		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return notFound(err, "task")
		}

		if err := checkTaskRefs(ctx, tx, in); err != nil {
			return err
		}

		from := task.Status

		task.Title = in.Title
		task.Status = in.Status
		task.Priority = in.Priority
		task.DueDate = in.DueDate
		task.ProjectID = in.ProjectID
		task.AssigneeID = in.AssigneeID

		if err := tx.Omit(clause.Associations).Save(&task).Error; err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		activity := models.ActivityTaskUpdated
		description := fmt.Sprintf("Updated task %q", task.Title)
		if from != models.TaskCompleted && in.Status == models.TaskCompleted {
			activity = models.ActivityTaskCompleted
			description = fmt.Sprintf("Completed task %q", task.Title)
		}

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: activity,
			Description:  description,
			TaskID:       strPtr(task.ID),
			ProjectID:    task.ProjectID,
		}, map[string]string{"from": string(from), "to": string(in.Status)})
	})

	if err != nil {
		return nil, err
	}

	return GetTask(ctx, db, id)
}

// DeleteTask removes the task with its assignments and task-level activity,
// then records the deletion against the project.
func DeleteTask(ctx context.Context, db *gorm.DB, actorID, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task

		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return notFound(err, "task")
		}

		if err := deleteTaskRows(tx, []string{task.ID}); err != nil {
			return err
		}

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityTaskDeleted,
			Description:  fmt.Sprintf("Deleted task %q", task.Title),
			ProjectID:    task.ProjectID,
		}, nil)
	})
}

func deleteTaskRows(tx *gorm.DB, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}

	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
		return fmt.Errorf("failed to delete task assignments: %w", err)
	}

	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.ActivityLog{}).Error; err != nil {
		return fmt.Errorf("failed to delete task activity: %w", err)
	}

	if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	return nil
}

// GetTaskStats counts tasks per tracked status plus overdue ones: due before
// now and not Completed.
func GetTaskStats(ctx context.Context, db *gorm.DB, now time.Time) (TaskStats, error) {
	var stats TaskStats

	count := func(dst *int64, query string, args ...interface{}) error {
		return db.WithContext(ctx).Model(&models.Task{}).Where(query, args...).Count(dst).Error
	}

	if err := count(&stats.Completed, "status = ?", models.TaskCompleted); err != nil {
		return stats, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	if err := count(&stats.InReview, "status = ?", models.TaskInReview); err != nil {
		return stats, fmt.Errorf("failed to count tasks in review: %w", err)
	}
	if err := count(&stats.InProgress, "status = ?", models.TaskInProgress); err != nil {
		return stats, fmt.Errorf("failed to count tasks in progress: %w", err)
	}
	if err := count(&stats.Overdue, "due_date < ? AND status <> ?", now.UTC(), models.TaskCompleted); err != nil {
		return stats, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	return stats, nil
}

// UpcomingTasks returns up to limit tasks due on or after the calendar day
// of now, soonest first. Equal due dates keep creation order.
func UpcomingTasks(ctx context.Context, db *gorm.DB, now time.Time, limit int) ([]models.Task, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var tasks []models.Task

	err := withTaskRefs(db.WithContext(ctx)).
		Where("due_date >= ?", today).
		Order("due_date ASC, created_at ASC, id ASC").
		Limit(limit).
		Find(&tasks).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming tasks: %w", err)
	}

	return tasks, nil
}
