package handlers

import (
	"context"
	"time"

	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/store"
	"github.com/monocle-dev/taskboard/internal/types"
	"github.com/monocle-dev/taskboard/internal/validation"
)

func presentUser(u models.User) types.UserResponse {
	return types.UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Initials: u.Initials(),
	}
}

// presentProjects annotates projects with task counts and member initials
// using one grouped query each.
func presentProjects(ctx context.Context, projects []models.Project) ([]types.ProjectResponse, error) {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	counts, err := store.ProjectTaskCounts(ctx, db.DB, ids)
	if err != nil {
		return nil, err
	}

	initials, err := store.ProjectMemberInitials(ctx, db.DB, ids)
	if err != nil {
		return nil, err
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for _, p := range projects {
		members := initials[p.ID]
		if members == nil {
			members = []string{}
		}

		c := counts[p.ID]

		response = append(response, types.ProjectResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      string(p.Status),
			DueDate:     validation.FormatDate(p.DueDate),
			OwnerID:     p.OwnerID,
			Tasks:       types.ProjectTasksSummary{Completed: c.Completed, Total: c.Total},
			Members:     members,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}

	return response, nil
}

func presentProject(ctx context.Context, project models.Project) (types.ProjectResponse, error) {
	response, err := presentProjects(ctx, []models.Project{project})
	if err != nil {
		return types.ProjectResponse{}, err
	}
	return response[0], nil
}

// presentTask expects Project and Assignee to be preloaded.
func presentTask(t models.Task, now time.Time) types.TaskResponse {
	response := types.TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		Priority:  string(t.Priority),
		DueDate:   validation.FormatDate(t.DueDate),
		Overdue:   t.IsOverdue(now),
		Project:   types.TaskProjectRef{ID: t.Project.ID, Name: t.Project.Name},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	if t.Assignee.ID != "" {
		response.Assignee = &types.TaskAssigneeRef{
			ID:       t.Assignee.ID,
			Name:     t.Assignee.Name,
			Initials: t.Assignee.Initials(),
		}
	}

	return response
}

func presentTasks(tasks []models.Task) []types.TaskResponse {
	now := time.Now().UTC()

	response := make([]types.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, presentTask(t, now))
	}

	return response
}

func presentMember(m models.ProjectMember) types.MemberResponse {
	return types.MemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		User:      presentUser(m.User),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func presentAssignment(a models.TaskAssignment) types.AssignmentResponse {
	return types.AssignmentResponse{
		ID:         a.ID,
		TaskID:     a.TaskID,
		UserID:     a.UserID,
		AssignedBy: a.AssignedBy,
		AssignedAt: a.CreatedAt,
		User:       presentUser(a.User),
		Assigner:   presentUser(a.Assigner),
	}
}

func presentActivity(entries []models.ActivityLog) []types.ActivityResponse {
	response := make([]types.ActivityResponse, 0, len(entries))

	for _, e := range entries {
		item := types.ActivityResponse{
			ID:           e.ID,
			ActivityType: e.ActivityType,
			Description:  e.Description,
			TaskID:       e.TaskID,
			ProjectID:    e.ProjectID,
			CreatedAt:    e.CreatedAt,
		}

		if len(e.Metadata) > 0 {
			item.Metadata = []byte(e.Metadata)
		}

		if e.User.ID != "" {
			user := presentUser(e.User)
			item.User = &user
		}

		response = append(response, item)
	}

	return response
}
