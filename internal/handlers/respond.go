package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/utils"
	"github.com/monocle-dev/taskboard/internal/validation"
)

// respondError writes the JSON body for err. Causes of 500s are logged and
// never returned to the client.
func respondError(ctx *gin.Context, op string, err error) {
	var verr *apperr.ValidationError
	var cerr *apperr.ConflictError

	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.As(err, &cerr):
		ctx.JSON(http.StatusConflict, gin.H{"message": cerr.Message})
	case errors.Is(err, apperr.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"message": capitalize(err.Error())})
	default:
		slog.ErrorContext(ctx.Request.Context(), "request failed",
			slog.String("op", op),
			slog.String("request_id", utils.GetRequestID(ctx)),
			slog.Any("error", err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}

func respondNotFound(ctx *gin.Context, entity string) {
	respondError(ctx, "", apperr.NotFound(entity))
}

func respondBadBody(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

// bindAndValidate decodes the JSON body into body and runs the validate
// tags. It writes the 400 or 422 response itself and reports whether the
// handler may continue. A value of the wrong JSON type is a field error,
// reported together with whatever else the rest of the body fails.
func bindAndValidate(ctx *gin.Context, op string, body any) bool {
	if err := ctx.ShouldBindJSON(body); err != nil {
		typed := validation.DecodeError(err, body)
		if typed == nil {
			respondBadBody(ctx)
			return false
		}

		if verr := validation.Struct(body); verr != nil {
			for field, msgs := range verr.Fields {
				if _, ok := typed.Fields[field]; !ok {
					typed.Fields[field] = msgs
				}
			}
		}

		respondError(ctx, op, typed)
		return false
	}

	if verr := validation.Struct(body); verr != nil {
		respondError(ctx, op, verr)
		return false
	}

	return true
}

// canonicalID lower-cases a body id that already passed the id rule so it
// matches stored keys the same way path ids do.
func canonicalID(raw string) string {
	id, err := utils.NormalizeID(raw)
	if err != nil {
		return raw
	}
	return id
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
