package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/auth"
	"github.com/monocle-dev/taskboard/internal/metrics"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/store"
	"github.com/monocle-dev/taskboard/internal/types"
	"github.com/monocle-dev/taskboard/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name            string `json:"name" validate:"omitempty,max=255"`
	Email           string `json:"email" validate:"omitempty,email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=8"`
}

type DeleteUserRequest struct {
	Password string `json:"password" validate:"required"`
}

// CookieDomain is the Domain attribute of the session cookie. Set from
// configuration at startup.
var CookieDomain string

// PasswordCost is the bcrypt cost for new password hashes.
var PasswordCost = bcrypt.DefaultCost

func setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   CookieDomain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func issueSession(ctx *gin.Context, user *models.User) bool {
	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		respondError(ctx, "generate token", err)
		return false
	}

	setTokenCookie(ctx, token, int(auth.TokenTTL.Seconds()))
	return true
}

func CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if !bindAndValidate(ctx, "validate registration", &body) {
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), PasswordCost)

	if err != nil {
		respondError(ctx, "hash password", err)
		return
	}

	user, err := store.CreateUser(ctx.Request.Context(), db.DB, body.Name, body.Email, string(passwordHash))

	if err != nil {
		respondError(ctx, "create user", err)
		return
	}

	metrics.RecordWrite("user", "create")

	if !issueSession(ctx, user) {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": presentUser(*user)})
}

func LoginUser(ctx *gin.Context) {
	var body LoginUserRequest

	if !bindAndValidate(ctx, "validate login", &body) {
		return
	}

	user, err := store.FindUserByEmail(ctx.Request.Context(), db.DB, body.Email)

	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		respondError(ctx, "login", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if !issueSession(ctx, user) {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": presentUser(*user)})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Name:     currentUser.Name,
			Email:    currentUser.Email,
			Initials: models.Initials(currentUser.Name),
		},
	})
}

func LogoutUser(ctx *gin.Context) {
	setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func UpdateUser(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	var body UpdateUserRequest

	if !bindAndValidate(ctx, "validate profile", &body) {
		return
	}

	update := store.UserUpdate{Name: body.Name, Email: body.Email}

	if body.NewPassword != "" {
		if body.CurrentPassword == "" {
			verr := apperr.NewValidationError()
			verr.Add("current_password", "The current password field is required when new password is present.")
			respondError(ctx, "validate profile", verr)
			return
		}

		user, err := store.GetUser(ctx.Request.Context(), db.DB, userID)

		if err != nil {
			respondError(ctx, "update user", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.CurrentPassword)); err != nil {
			verr := apperr.NewValidationError()
			verr.Add("current_password", "The current password is incorrect.")
			respondError(ctx, "validate profile", verr)
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), PasswordCost)

		if err != nil {
			respondError(ctx, "hash password", err)
			return
		}

		update.PasswordHash = string(passwordHash)
	}

	user, err := store.UpdateUser(ctx.Request.Context(), db.DB, userID, update)

	if err != nil {
		respondError(ctx, "update user", err)
		return
	}

	metrics.RecordWrite("user", "update")

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    presentUser(*user),
	})
}

// DeleteUser removes the caller's account after confirming the password.
// Owned projects and tasks assigned to the caller go with it.
func DeleteUser(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	var body DeleteUserRequest

	if !bindAndValidate(ctx, "validate account deletion", &body) {
		return
	}

	user, err := store.GetUser(ctx.Request.Context(), db.DB, userID)

	if err != nil {
		respondError(ctx, "delete user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		verr := apperr.NewValidationError()
		verr.Add("password", "The password is incorrect.")
		respondError(ctx, "validate account deletion", verr)
		return
	}

	if err := store.DeleteUser(ctx.Request.Context(), db.DB, userID); err != nil {
		respondError(ctx, "delete user", err)
		return
	}

	metrics.RecordWrite("user", "delete")

	setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
