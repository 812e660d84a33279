package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("invalid id")

// GetIDParam reads a UUID path parameter. Anything that is not a UUID cannot
// name a row, so callers answer it with 404.
func GetIDParam(ctx *gin.Context, name string) (string, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return "", ErrInvalidID
	}

	return NormalizeID(raw)
}

// NormalizeID returns the canonical lower-case form of a UUID in any of the
// spellings uuid.Parse accepts.
func NormalizeID(raw string) (string, error) {
	id, err := uuid.Parse(raw)

	if err != nil {
		return "", ErrInvalidID
	}

	return id.String(), nil
}

// GetLimitQuery parses the limit query parameter, falling back to def when it
// is absent or not a positive integer.
func GetLimitQuery(ctx *gin.Context, def int) int {
	raw := ctx.Query("limit")

	if raw == "" {
		return def
	}

	limit, err := strconv.Atoi(raw)

	if err != nil || limit <= 0 {
		return def
	}

	return limit
}
