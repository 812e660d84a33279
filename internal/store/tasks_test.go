package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask_RejectsUnknownReferences(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")

	_, err := CreateTask(ctx, conn, ada.ID, TaskInput{
		Title: "Orphan", Status: models.TaskToDo, Priority: models.PriorityLow,
		DueDate: launchDue, ProjectID: "1a0c7a4e-3b5e-4c55-8b1f-2a4f0c1d9e77", AssigneeID: "5c9b0e0a-2b7d-4f57-9a43-71a0d1f3e5b2",
	})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "project_id")
	assert.Contains(t, verr.Fields, "assignee_id")
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.Task{}, ""))
}

func TestUpdateTask_CompletionIsLogged(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	project := testutil.CreateProject(t, conn, ada, "Launch", models.ProjectPlanning)

	in := TaskInput{
		Title: "Draft spec", Status: models.TaskToDo, Priority: models.PriorityHigh,
		DueDate: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), ProjectID: project.ID, AssigneeID: ada.ID,
	}

	task, err := CreateTask(ctx, conn, ada.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Launch", task.Project.Name)
	assert.Equal(t, "Ada Lovelace", task.Assignee.Name)

	in.Status = models.TaskCompleted
	updated, err := UpdateTask(ctx, conn, ada.ID, task.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, updated.Status)

	entries, err := ListActivity(ctx, conn, project.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActivityTaskCompleted, entries[0].ActivityType)
	assert.Equal(t, models.ActivityTaskCreated, entries[1].ActivityType)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(entries[0].Metadata, &meta))
	assert.Equal(t, map[string]string{"from": "To Do", "to": "Completed"}, meta)

	counts, err := ProjectTaskCounts(ctx, conn, []string{project.ID})
	require.NoError(t, err)
	assert.Equal(t, TaskCounts{Completed: 1, Total: 1}, counts[project.ID])
}

func TestDeleteTask_CascadesAndKeepsTrail(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	grace := testutil.CreateUser(t, conn, "Grace Hopper", "grace@example.com")
	project := testutil.CreateProject(t, conn, ada, "Launch", models.ProjectPlanning)

	task, err := CreateTask(ctx, conn, ada.ID, TaskInput{
		Title: "Draft spec", Status: models.TaskToDo, Priority: models.PriorityHigh,
		DueDate: launchDue, ProjectID: project.ID, AssigneeID: ada.ID,
	})
	require.NoError(t, err)
	_, err = AssignUser(ctx, conn, ada.ID, task.ID, grace.ID)
	require.NoError(t, err)

	require.NoError(t, DeleteTask(ctx, conn, ada.ID, task.ID))

	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.Task{}, "id = ?", task.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.TaskAssignment{}, "task_id = ?", task.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.ActivityLog{}, "task_id = ?", task.ID))
	assert.Equal(t, int64(1), testutil.Count(t, conn, &models.ActivityLog{}, "project_id = ? AND activity_type = ?", project.ID, models.ActivityTaskDeleted))

	_, err = GetTask(ctx, conn, task.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetTaskStats(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	project := testutil.CreateProject(t, conn, ada, "Launch", models.ProjectPlanning)

	now := time.Date(2025, 11, 15, 9, 30, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 10)

	fixtures := []models.Task{
		testutil.CreateTask(t, conn, project, ada, "done late", models.TaskCompleted, past.AddDate(-1, 0, 0)),
		testutil.CreateTask(t, conn, project, ada, "done", models.TaskCompleted, future),
		testutil.CreateTask(t, conn, project, ada, "review late", models.TaskInReview, past),
		testutil.CreateTask(t, conn, project, ada, "progress", models.TaskInProgress, future),
		testutil.CreateTask(t, conn, project, ada, "todo late", models.TaskToDo, past),
		testutil.CreateTask(t, conn, project, ada, "cancelled late", models.TaskCancelled, past),
	}

	stats, err := GetTaskStats(ctx, conn, now)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, int64(1), stats.InReview)
	assert.Equal(t, int64(1), stats.InProgress)
	assert.Equal(t, int64(3), stats.Overdue)

	var overdue int64
	for _, task := range fixtures {
		if task.IsOverdue(now) {
			overdue++
		}
	}
	assert.Equal(t, overdue, stats.Overdue)
}

func TestUpcomingTasks(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	project := testutil.CreateProject(t, conn, ada, "Launch", models.ProjectPlanning)

	now := time.Date(2025, 11, 15, 18, 0, 0, 0, time.UTC)
	today := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)

	testutil.CreateTask(t, conn, project, ada, "yesterday", models.TaskToDo, today.AddDate(0, 0, -1))
	testutil.CreateTask(t, conn, project, ada, "plus 5", models.TaskToDo, today.AddDate(0, 0, 5))
	newer := testutil.CreateTask(t, conn, project, ada, "plus 2 newer", models.TaskToDo, today.AddDate(0, 0, 2))
	testutil.CreateTask(t, conn, project, ada, "today", models.TaskToDo, today)
	older := testutil.CreateTask(t, conn, project, ada, "plus 2 older", models.TaskToDo, today.AddDate(0, 0, 2))
	testutil.CreateTask(t, conn, project, ada, "plus 9", models.TaskToDo, today.AddDate(0, 0, 9))
	testutil.CreateTask(t, conn, project, ada, "plus 7", models.TaskToDo, today.AddDate(0, 0, 7))

	// Same due date: created_at decides, not insertion order.
	testutil.SetCreatedAt(t, conn, &models.Task{}, newer.ID, now.Add(-time.Hour))
	testutil.SetCreatedAt(t, conn, &models.Task{}, older.ID, now.Add(-2*time.Hour))

	tasks, err := UpcomingTasks(ctx, conn, now, UpcomingLimit)
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"today", "plus 2 older", "plus 2 newer", "plus 5"}, titles)

	for i := 1; i < len(tasks); i++ {
		assert.False(t, tasks[i].DueDate.Before(tasks[i-1].DueDate))
	}
}

func TestUpcomingTasks_EqualCreatedAtFallsBackToID(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	project := testutil.CreateProject(t, conn, ada, "Launch", models.ProjectPlanning)

	now := time.Date(2025, 11, 15, 18, 0, 0, 0, time.UTC)
	due := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

	a := testutil.CreateTask(t, conn, project, ada, "a", models.TaskToDo, due)
	b := testutil.CreateTask(t, conn, project, ada, "b", models.TaskToDo, due)
	testutil.SetCreatedAt(t, conn, &models.Task{}, a.ID, now)
	testutil.SetCreatedAt(t, conn, &models.Task{}, b.ID, now)

	want := []string{a.ID, b.ID}
	if b.ID < a.ID {
		want = []string{b.ID, a.ID}
	}

	tasks, err := UpcomingTasks(ctx, conn, now, UpcomingLimit)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, want, []string{tasks[0].ID, tasks[1].ID})
}
