package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/auth"
	"github.com/monocle-dev/taskboard/internal/store"
	"github.com/monocle-dev/taskboard/internal/types"
)

// tokenFromRequest prefers the Authorization header and falls back to the
// session cookie set by login.
func tokenFromRequest(ctx *gin.Context) (string, string) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", "Authorization header format must be Bearer {token}"
		}

		return parts[1], ""
	}

	if cookie, err := ctx.Cookie(types.TokenCookieName); err == nil && cookie != "" {
		return cookie, ""
	}

	return "", "Authorization token is required"
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, problem := tokenFromRequest(ctx)

		if problem != "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": problem})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		userID, err := auth.UserIDFromToken(token)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		user, err := store.GetUser(ctx.Request.Context(), db.DB, userID)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		ctx.Set(types.ContextUserKey, types.AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		ctx.Next()
	}
}
