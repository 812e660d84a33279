package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/models"
	"gorm.io/gorm"
)

type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func GetUser(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	var user models.User

	if err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}

	return &user, nil
}

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	var user models.User

	if err := db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}

	return &user, nil
}

// CreateUser stores a new account. The email must not be taken.
func CreateUser(ctx context.Context, db *gorm.DB, name, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
	}

	taken, err := exists(ctx, db, &models.User{}, "email = ?", user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("Email already exists")
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ListUserRefs returns id, name and email of every user for pickers.
func ListUserRefs(ctx context.Context, db *gorm.DB) ([]UserRef, error) {
	var refs []UserRef

	err := db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, name, email").
		Order("name ASC").
		Scan(&refs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return refs, nil
}

// UserUpdate carries the profile fields to change. Empty fields are kept.
type UserUpdate struct {
	Name         string
	Email        string
	PasswordHash string
}

func UpdateUser(ctx context.Context, db *gorm.DB, id string, in UserUpdate) (*models.User, error) {
	var user *models.User

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		user, err = GetUser(ctx, tx, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}

		if name := strings.TrimSpace(in.Name); name != "" {
			updates["name"] = name
		}

		if email := NormalizeEmail(in.Email); email != "" && email != user.Email {
			taken, err := exists(ctx, tx, &models.User{}, "email = ? AND id <> ?", email, id)
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if taken {
				return apperr.Conflict("Email already exists")
			}
			updates["email"] = email
		}

		if in.PasswordHash != "" {
			updates["password_hash"] = in.PasswordHash
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if isDuplicate(err) {
				return apperr.Conflict("Email already exists")
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		user, err = GetUser(ctx, tx, id)
		return err
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the account together with the projects it owns, the
// tasks assigned to it, and its memberships, assignments and activity.
func DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := GetUser(ctx, tx, id); err != nil {
			return err
		}

		var projectIDs []string
		if err := tx.Model(&models.Project{}).Where("owner_id = ?", id).Pluck("id", &projectIDs).Error; err != nil {
			return fmt.Errorf("failed to collect owned projects: %w", err)
		}

		if err := deleteProjectRows(tx, projectIDs); err != nil {
			return err
		}

		var taskIDs []string
		if err := tx.Model(&models.Task{}).Where("assignee_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return fmt.Errorf("failed to collect assigned tasks: %w", err)
		}

		if err := deleteTaskRows(tx, taskIDs); err != nil {
			return err
		}

		if err := tx.Where("user_id = ? OR assigned_by = ?", id, id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete user assignments: %w", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return fmt.Errorf("failed to delete user memberships: %w", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.ActivityLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete user activity: %w", err)
		}

		if err := tx.Where("id = ?", id).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		return nil
	})
}
