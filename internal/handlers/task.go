package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/metrics"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/store"
	"github.com/monocle-dev/taskboard/internal/utils"
	"github.com/monocle-dev/taskboard/internal/validation"
)

type TaskRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	Status     string `json:"status" validate:"required,task_status"`
	Priority   string `json:"priority" validate:"required,task_priority"`
	DueDate    string `json:"due_date" validate:"required,isodate"`
	ProjectID  string `json:"project_id" validate:"required,id"`
	AssigneeID string `json:"assignee_id" validate:"required,id"`
}

func (r TaskRequest) input() store.TaskInput {
	due, _ := validation.ParseDate(r.DueDate)

	return store.TaskInput{
		Title:      r.Title,
		Status:     models.TaskStatus(r.Status),
		Priority:   models.TaskPriority(r.Priority),
		DueDate:    due,
		ProjectID:  canonicalID(r.ProjectID),
		AssigneeID: canonicalID(r.AssigneeID),
	}
}

func bindTask(ctx *gin.Context) (TaskRequest, bool) {
	var body TaskRequest
	ok := bindAndValidate(ctx, "validate task", &body)

	return body, ok
}

func ListTasks(ctx *gin.Context) {
	tasks, err := store.ListTasks(ctx.Request.Context(), db.DB)

	if err != nil {
		respondError(ctx, "list tasks", err)
		return
	}

	ctx.JSON(http.StatusOK, presentTasks(tasks))
}

func GetTask(ctx *gin.Context) {
	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "task")
		return
	}

	task, err := store.GetTask(ctx.Request.Context(), db.DB, taskID)

	if err != nil {
		respondError(ctx, "get task", err)
		return
	}

	ctx.JSON(http.StatusOK, presentTask(*task, time.Now().UTC()))
}

func CreateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	body, ok := bindTask(ctx)

	if !ok {
		return
	}

	task, err := store.CreateTask(ctx.Request.Context(), db.DB, userID, body.input())

	if err != nil {
		respondError(ctx, "create task", err)
		return
	}

	metrics.RecordWrite("task", "create")

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    presentTask(*task, time.Now().UTC()),
	})
}

func UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "task")
		return
	}

	body, ok := bindTask(ctx)

	if !ok {
		return
	}

	task, err := store.UpdateTask(ctx.Request.Context(), db.DB, userID, taskID, body.input())

	if err != nil {
		respondError(ctx, "update task", err)
		return
	}

	metrics.RecordWrite("task", "update")

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    presentTask(*task, time.Now().UTC()),
	})
}

func DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "task")
		return
	}

	if err := store.DeleteTask(ctx.Request.Context(), db.DB, userID, taskID); err != nil {
		respondError(ctx, "delete task", err)
		return
	}

	metrics.RecordWrite("task", "delete")

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// TaskFormData returns the pickers for the task form: open projects and all users.
func TaskFormData(ctx *gin.Context) {
	projects, err := store.ListOpenProjects(ctx.Request.Context(), db.DB)

	if err != nil {
		respondError(ctx, "task form data", err)
		return
	}

	users, err := store.ListUserRefs(ctx.Request.Context(), db.DB)

	if err != nil {
		respondError(ctx, "task form data", err)
		return
	}

	if projects == nil {
		projects = []store.ProjectRef{}
	}
	if users == nil {
		users = []store.UserRef{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"users":    users,
	})
}

func TaskStats(ctx *gin.Context) {
	stats, err := store.GetTaskStats(ctx.Request.Context(), db.DB, time.Now())

	if err != nil {
		respondError(ctx, "task stats", err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

func UpcomingTasks(ctx *gin.Context) {
	tasks, err := store.UpcomingTasks(ctx.Request.Context(), db.DB, time.Now(), store.UpcomingLimit)

	if err != nil {
		respondError(ctx, "upcoming tasks", err)
		return
	}

	ctx.JSON(http.StatusOK, presentTasks(tasks))
}
