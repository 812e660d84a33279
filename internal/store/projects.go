package store

import (
	"context"
	"fmt"
	"time"

	"github.com/monocle-dev/taskboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	DueDate     time.Time
}

// TaskCounts is the per-project completion summary.
type TaskCounts struct {
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ListProjects(ctx context.Context, db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project

	if err := db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func GetProject(ctx context.Context, db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project

	if err := db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, notFound(err, "project")
	}

	return &project, nil
}

// CreateProject inserts the project owned by actorID and enrolls the actor
// as its Owner member.
func CreateProject(ctx context.Context, db *gorm.DB, actorID string, in ProjectInput) (*models.Project, error) {
	project := models.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		OwnerID:     actorID,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&project).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		owner := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    actorID,
			Role:      models.RoleOwner,
		}

		if err := tx.Omit(clause.Associations).Create(&owner).Error; err != nil {
			return fmt.Errorf("failed to add project owner: %w", err)
		}

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityProjectCreated,
			Description:  fmt.Sprintf("Created project %q", project.Name),
			ProjectID:    project.ID,
		}, nil)
	})

	if err != nil {
		return nil, err
	}

	return &project, nil
}

// UpdateProject replaces the editable fields. The owner is left untouched.
func UpdateProject(ctx context.Context, db *gorm.DB, actorID, id string, in ProjectInput) (*models.Project, error) {
	var project *models.Project

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		project, err = GetProject(ctx, tx, id)
		if err != nil {
			return err
		}

		from := project.Status

		project.Name = in.Name
		project.Description = in.Description
		project.Status = in.Status
		project.DueDate = in.DueDate

		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityProjectUpdated,
			Description:  fmt.Sprintf("Updated project %q", project.Name),
			ProjectID:    project.ID,
		}, map[string]string{"from": string(from), "to": string(in.Status)})
	})

	if err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes the project with its tasks, members and activity.
func DeleteProject(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := GetProject(ctx, tx, id); err != nil {
			return err
		}
		return deleteProjectRows(tx, []string{id})
	})
}

func deleteProjectRows(tx *gorm.DB, projectIDs []string) error {
	if len(projectIDs) == 0 {
		return nil
	}

	var taskIDs []string
	if err := tx.Model(&models.Task{}).Where("project_id IN ?", projectIDs).Pluck("id", &taskIDs).Error; err != nil {
		return fmt.Errorf("failed to collect project tasks: %w", err)
	}

	if err := deleteTaskRows(tx, taskIDs); err != nil {
		return err
	}

	if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.ActivityLog{}).Error; err != nil {
		return fmt.Errorf("failed to delete project activity: %w", err)
	}

	if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.ProjectMember{}).Error; err != nil {
		return fmt.Errorf("failed to delete project members: %w", err)
	}

	if err := tx.Where("id IN ?", projectIDs).Delete(&models.Project{}).Error; err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// ProjectTaskCounts returns completed/total task counts keyed by project id.
// Projects without tasks are absent from the map.
func ProjectTaskCounts(ctx context.Context, db *gorm.DB, projectIDs []string) (map[string]TaskCounts, error) {
	counts := make(map[string]TaskCounts, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProjectID string
		Total     int64
		Completed int64
	}

	err := db.WithContext(ctx).
		Model(&models.Task{}).
		Select("project_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed", models.TaskCompleted).
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to count project tasks: %w", err)
	}

	for _, row := range rows {
		counts[row.ProjectID] = TaskCounts{Completed: row.Completed, Total: row.Total}
	}

	return counts, nil
}

// ProjectMemberInitials returns each project's member initials in join order.
func ProjectMemberInitials(ctx context.Context, db *gorm.DB, projectIDs []string) (map[string][]string, error) {
	initials := make(map[string][]string, len(projectIDs))
	if len(projectIDs) == 0 {
		return initials, nil
	}

	var rows []struct {
		ProjectID string
		Name      string
	}

	err := db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Select("project_members.project_id, users.name").
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id IN ?", projectIDs).
		Order("project_members.created_at ASC, project_members.id ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to load project members: %w", err)
	}

	for _, row := range rows {
		initials[row.ProjectID] = append(initials[row.ProjectID], models.Initials(row.Name))
	}

	return initials, nil
}

// ListOpenProjects returns id and name of every project not yet completed.
func ListOpenProjects(ctx context.Context, db *gorm.DB) ([]ProjectRef, error) {
	var refs []ProjectRef

	err := db.WithContext(ctx).
		Model(&models.Project{}).
		Select("id, name").
		Where("status <> ?", models.ProjectCompleted).
		Order("name ASC").
		Scan(&refs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list open projects: %w", err)
	}

	return refs, nil
}
