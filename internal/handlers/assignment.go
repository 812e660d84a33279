package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/metrics"
	"github.com/monocle-dev/taskboard/internal/store"
	"github.com/monocle-dev/taskboard/internal/types"
	"github.com/monocle-dev/taskboard/internal/utils"
)

type AssignUserRequest struct {
	UserID string `json:"user_id" validate:"required,id"`
}

func ListAssignments(ctx *gin.Context) {
	taskID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "task")
		return
	}

	assignments, err := store.ListAssignments(ctx.Request.Context(), db.DB, taskID)

	if err != nil {
		respondError(ctx, "list assignments", err)
		return
	}

	response := make([]types.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		response = append(response, presentAssignment(a))
	}

	ctx.JSON(http.StatusOK, response)
}

func AssignUser(ctx *gin.Context) {
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

	var body AssignUserRequest

	if !bindAndValidate(ctx, "validate assignment", &body) {
		return
	}

	assignment, err := store.AssignUser(ctx.Request.Context(), db.DB, userID, taskID, canonicalID(body.UserID))

	if err != nil {
		respondError(ctx, "assign user", err)
		return
	}

	metrics.RecordWrite("assignment", "create")

	ctx.JSON(http.StatusCreated, gin.H{
		"message":    "User assigned successfully",
		"assignment": presentAssignment(*assignment),
	})
}

func UnassignUser(ctx *gin.Context) {
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

	assignmentID, err := utils.GetIDParam(ctx, "assignment_id")

	if err != nil {
		respondNotFound(ctx, "assignment")
		return
	}

	if err := store.Unassign(ctx.Request.Context(), db.DB, userID, taskID, assignmentID); err != nil {
		respondError(ctx, "unassign user", err)
		return
	}

	metrics.RecordWrite("assignment", "delete")

	ctx.JSON(http.StatusOK, gin.H{"message": "User unassigned successfully"})
}
