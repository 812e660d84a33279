package store

import (
	"context"
	"testing"

	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMember_DuplicateIsConflict(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	grace := testutil.CreateUser(t, conn, "Grace Hopper", "grace@example.com")

	project, err := CreateProject(ctx, conn, ada.ID, ProjectInput{Name: "Launch", Status: models.ProjectPlanning, DueDate: launchDue})
	require.NoError(t, err)

	member, err := AddMember(ctx, conn, ada.ID, project.ID, MemberInput{UserID: grace.ID, Role: models.RoleMember})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", member.User.Name)

	before := testutil.Count(t, conn, &models.ProjectMember{}, "project_id = ?", project.ID)

	_, err = AddMember(ctx, conn, ada.ID, project.ID, MemberInput{UserID: grace.ID, Role: models.RoleAdmin})
	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)

	// the owner is already enrolled too
	_, err = AddMember(ctx, conn, ada.ID, project.ID, MemberInput{Email: "ada@example.com", Role: models.RoleMember})
	require.ErrorAs(t, err, &conflict)

	assert.Equal(t, before, testutil.Count(t, conn, &models.ProjectMember{}, "project_id = ?", project.ID))
}

func TestAddMember_UnknownUserOrProject(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	project := testutil.CreateProject(t, conn, ada, "Launch", models.ProjectPlanning)

	_, err := AddMember(ctx, conn, ada.ID, project.ID, MemberInput{Email: "nobody@example.com", Role: models.RoleMember})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	_, err = AddMember(ctx, conn, ada.ID, "missing", MemberInput{UserID: ada.ID, Role: models.RoleMember})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateAndRemoveMember(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	grace := testutil.CreateUser(t, conn, "Grace Hopper", "grace@example.com")
	project := testutil.CreateProject(t, conn, ada, "Launch", models.ProjectPlanning)

	member, err := AddMember(ctx, conn, ada.ID, project.ID, MemberInput{UserID: grace.ID, Role: models.RoleViewer})
	require.NoError(t, err)

	updated, err := UpdateMemberRole(ctx, conn, ada.ID, project.ID, member.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	members, err := ListMembers(ctx, conn, project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleAdmin, members[0].Role)

	_, err = UpdateMemberRole(ctx, conn, ada.ID, "other-project", member.ID, models.RoleAdmin)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, RemoveMember(ctx, conn, ada.ID, project.ID, member.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.ProjectMember{}, "project_id = ?", project.ID))
	assert.ErrorIs(t, RemoveMember(ctx, conn, ada.ID, project.ID, member.ID), apperr.ErrNotFound)

	assert.Equal(t, int64(1), testutil.Count(t, conn, &models.ActivityLog{}, "activity_type = ?", models.ActivityMemberRemoved))
}

func TestAssignUser_DuplicateIsConflict(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	grace := testutil.CreateUser(t, conn, "Grace Hopper", "grace@example.com")
	project := testutil.CreateProject(t, conn, ada, "Launch", models.ProjectPlanning)
	task := testutil.CreateTask(t, conn, project, ada, "Draft spec", models.TaskToDo, launchDue)

	assignment, err := AssignUser(ctx, conn, ada.ID, task.ID, grace.ID)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, assignment.AssignedBy)
	assert.Equal(t, "Ada Lovelace", assignment.Assigner.Name)

	before := testutil.Count(t, conn, &models.TaskAssignment{}, "task_id = ?", task.ID)

	_, err = AssignUser(ctx, conn, ada.ID, task.ID, grace.ID)
	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, before, testutil.Count(t, conn, &models.TaskAssignment{}, "task_id = ?", task.ID))

	_, err = AssignUser(ctx, conn, ada.ID, task.ID, "5c9b0e0a-2b7d-4f57-9a43-71a0d1f3e5b2")
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)

	list, err := ListAssignments(ctx, conn, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Grace Hopper", list[0].User.Name)

	require.NoError(t, Unassign(ctx, conn, ada.ID, task.ID, assignment.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.TaskAssignment{}, "task_id = ?", task.ID))

	_, err = ListAssignments(ctx, conn, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteUser_Cascades(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	grace := testutil.CreateUser(t, conn, "Grace Hopper", "grace@example.com")

	owned, err := CreateProject(ctx, conn, grace.ID, ProjectInput{Name: "Grace's", Status: models.ProjectPlanning, DueDate: launchDue})
	require.NoError(t, err)
	shared, err := CreateProject(ctx, conn, ada.ID, ProjectInput{Name: "Shared", Status: models.ProjectPlanning, DueDate: launchDue})
	require.NoError(t, err)
	_, err = AddMember(ctx, conn, ada.ID, shared.ID, MemberInput{UserID: grace.ID, Role: models.RoleMember})
	require.NoError(t, err)

	gracesTask, err := CreateTask(ctx, conn, ada.ID, TaskInput{
		Title: "For Grace", Status: models.TaskToDo, Priority: models.PriorityLow,
		DueDate: launchDue, ProjectID: shared.ID, AssigneeID: grace.ID,
	})
	require.NoError(t, err)
	adasTask, err := CreateTask(ctx, conn, ada.ID, TaskInput{
		Title: "For Ada", Status: models.TaskToDo, Priority: models.PriorityLow,
		DueDate: launchDue, ProjectID: shared.ID, AssigneeID: ada.ID,
	})
	require.NoError(t, err)
	_, err = AssignUser(ctx, conn, ada.ID, adasTask.ID, grace.ID)
	require.NoError(t, err)

	require.NoError(t, DeleteUser(ctx, conn, grace.ID))

	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.User{}, "id = ?", grace.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.Project{}, "id = ?", owned.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.Task{}, "id = ?", gracesTask.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.ProjectMember{}, "user_id = ?", grace.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.TaskAssignment{}, "user_id = ?", grace.ID))
	assert.Equal(t, int64(0), testutil.Count(t, conn, &models.ActivityLog{}, "user_id = ?", grace.ID))

	assert.Equal(t, int64(1), testutil.Count(t, conn, &models.Task{}, "id = ?", adasTask.ID))
	assert.Equal(t, int64(1), testutil.Count(t, conn, &models.Project{}, "id = ?", shared.ID))
}

func TestCreateUser_EmailTaken(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, conn, " Ada Lovelace ", "Ada@Example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Lovelace", user.Name)

	_, err = CreateUser(ctx, conn, "Imposter", "ADA@example.com", "hash")
	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)

	refs, err := ListUserRefs(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, []UserRef{{ID: user.ID, Name: "Ada Lovelace", Email: "ada@example.com"}}, refs)
}
