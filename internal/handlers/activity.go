package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/store"
	"github.com/monocle-dev/taskboard/internal/utils"
)

// RecentActivity lists the newest activity across every project.
func RecentActivity(ctx *gin.Context) {
	limit := utils.GetLimitQuery(ctx, store.DefaultActivityLimit)

	entries, err := store.ListActivity(ctx.Request.Context(), db.DB, "", limit)

	if err != nil {
		respondError(ctx, "recent activity", err)
		return
	}

	ctx.JSON(http.StatusOK, presentActivity(entries))
}

func ProjectActivity(ctx *gin.Context) {
	projectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondNotFound(ctx, "project")
		return
	}

	limit := utils.GetLimitQuery(ctx, store.DefaultActivityLimit)

	entries, err := store.ListActivity(ctx.Request.Context(), db.DB, projectID, limit)

	if err != nil {
		respondError(ctx, "project activity", err)
		return
	}

	ctx.JSON(http.StatusOK, presentActivity(entries))
}
