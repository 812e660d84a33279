package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/metrics"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/store"
	"github.com/monocle-dev/taskboard/internal/types"
	"github.com/monocle-dev/taskboard/internal/utils"
)

// AddMemberRequest names the user by id or by email. Role defaults to Member.
type AddMemberRequest struct {
	UserID string `json:"user_id" validate:"required_without=Email,omitempty,id"`
	Email  string `json:"email" validate:"omitempty,email"`
	Role   string `json:"role" validate:"omitempty,member_role"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" validate:"required,member_role"`
}

func ListMembers(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "project")
		return
	}

	members, err := store.ListMembers(ctx.Request.Context(), db.DB, projectID)

	if err != nil {
		respondError(ctx, "list members", err)
		return
	}

	response := make([]types.MemberResponse, 0, len(members))
	for _, m := range members {
		response = append(response, presentMember(m))
	}

	ctx.JSON(http.StatusOK, response)
}

func AddMember(ctx *gin.Context) {
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

	var body AddMemberRequest

	if !bindAndValidate(ctx, "validate member", &body) {
		return
	}

	role := models.MemberRole(body.Role)
	if role == "" {
		role = models.RoleMember
	}

	member, err := store.AddMember(ctx.Request.Context(), db.DB, userID, projectID, store.MemberInput{
		UserID: canonicalID(body.UserID),
		Email:  body.Email,
		Role:   role,
	})

	if err != nil {
		respondError(ctx, "add member", err)
		return
	}

	metrics.RecordWrite("member", "create")

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Member added successfully",
		"member":  presentMember(*member),
	})
}

func UpdateMember(ctx *gin.Context) {
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

	memberID, err := utils.GetIDParam(ctx, "member_id")

	if err != nil {
		respondNotFound(ctx, "member")
		return
	}

	var body UpdateMemberRequest

	if !bindAndValidate(ctx, "validate member", &body) {
		return
	}

	member, err := store.UpdateMemberRole(ctx.Request.Context(), db.DB, userID, projectID, memberID, models.MemberRole(body.Role))

	if err != nil {
		respondError(ctx, "update member", err)
		return
	}

	metrics.RecordWrite("member", "update")

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Member updated successfully",
		"member":  presentMember(*member),
	})
}

func RemoveMember(ctx *gin.Context) {
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

	memberID, err := utils.GetIDParam(ctx, "member_id")

	if err != nil {
		respondNotFound(ctx, "member")
		return
	}

	if err := store.RemoveMember(ctx.Request.Context(), db.DB, userID, projectID, memberID); err != nil {
		respondError(ctx, "remove member", err)
		return
	}

	metrics.RecordWrite("member", "delete")

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
