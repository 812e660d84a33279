package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/metrics"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/store"
	"github.com/monocle-dev/taskboard/internal/utils"
	"github.com/monocle-dev/taskboard/internal/validation"
)

// ProjectRequest is shared by create and update; both replace every field.
type ProjectRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"required,project_status"`
	DueDate     string `json:"due_date" validate:"required,isodate"`
}

func (r ProjectRequest) input() store.ProjectInput {
	due, _ := validation.ParseDate(r.DueDate)

	return store.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		Status:      models.ProjectStatus(r.Status),
		DueDate:     due,
	}
}

func bindProject(ctx *gin.Context) (ProjectRequest, bool) {
	var body ProjectRequest
	ok := bindAndValidate(ctx, "validate project", &body)

	return body, ok
}

func ListProjects(ctx *gin.Context) {
	projects, err := store.ListProjects(ctx.Request.Context(), db.DB)

	if err != nil {
		respondError(ctx, "list projects", err)
		return
	}

	response, err := presentProjects(ctx.Request.Context(), projects)

	if err != nil {
		respondError(ctx, "list projects", err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "project")
		return
	}

	project, err := store.GetProject(ctx.Request.Context(), db.DB, projectID)

	if err != nil {
		respondError(ctx, "get project", err)
		return
	}

	response, err := presentProject(ctx.Request.Context(), *project)

	if err != nil {
		respondError(ctx, "get project", err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	body, ok := bindProject(ctx)

	if !ok {
		return
	}

	project, err := store.CreateProject(ctx.Request.Context(), db.DB, userID, body.input())

	if err != nil {
		respondError(ctx, "create project", err)
		return
	}

	metrics.RecordWrite("project", "create")

	response, err := presentProject(ctx.Request.Context(), *project)

	if err != nil {
		respondError(ctx, "create project", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": response,
	})
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "project")
		return
	}

	body, ok := bindProject(ctx)

	if !ok {
		return
	}

	project, err := store.UpdateProject(ctx.Request.Context(), db.DB, userID, projectID, body.input())

	if err != nil {
		respondError(ctx, "update project", err)
		return
	}

	metrics.RecordWrite("project", "update")

	response, err := presentProject(ctx.Request.Context(), *project)

	if err != nil {
		respondError(ctx, "update project", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
		"project": response,
	})
}

func DeleteProject(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "project")
		return
	}

	if err := store.DeleteProject(ctx.Request.Context(), db.DB, projectID); err != nil {
		respondError(ctx, "delete project", err)
		return
	}

	metrics.RecordWrite("project", "delete")

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
