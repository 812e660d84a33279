package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberInput identifies the user either by id or by email.
type MemberInput struct {
	UserID string
	Email  string
	Role   models.MemberRole
}

func ListMembers(ctx context.Context, db *gorm.DB, projectID string) ([]models.ProjectMember, error) {
	if _, err := GetProject(ctx, db, projectID); err != nil {
		return nil, err
	}

	var members []models.ProjectMember

	err := db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&members).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

func getMember(ctx context.Context, db *gorm.DB, projectID, memberID string) (*models.ProjectMember, error) {
	var member models.ProjectMember

	err := db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND project_id = ?", memberID, projectID).
		First(&member).Error

	if err != nil {
		return nil, notFound(err, "member")
	}

	return &member, nil
}

func resolveMemberUser(ctx context.Context, db *gorm.DB, in MemberInput) (*models.User, error) {
	if in.UserID != "" {
		user, err := GetUser(ctx, db, in.UserID)
		if errors.Is(err, apperr.ErrNotFound) {
			verr := apperr.NewValidationError()
			verr.Add("user_id", "The selected user id is invalid.")
			return nil, verr
		}
		return user, err
	}

	user, err := FindUserByEmail(ctx, db, in.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		verr := apperr.NewValidationError()
		verr.Add("email", "No user is registered with this email address.")
		return nil, verr
	}
	return user, err
}

// AddMember enrolls a user in the project. A second membership for the same
// user is a conflict and leaves the table unchanged.
func AddMember(ctx context.Context, db *gorm.DB, actorID, projectID string, in MemberInput) (*models.ProjectMember, error) {
	var member models.ProjectMember

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := GetProject(ctx, tx, projectID)
		if err != nil {
			return err
		}

		user, err := resolveMemberUser(ctx, tx, in)
		if err != nil {
			return err
		}

		dup, err := exists(ctx, tx, &models.ProjectMember{}, "project_id = ? AND user_id = ?", projectID, user.ID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if dup {
			return apperr.Conflict("%s is already a member of this project", user.Name)
		}

		member = models.ProjectMember{
			ProjectID: projectID,
			UserID:    user.ID,
			Role:      in.Role,
		}

		if err := tx.Omit(clause.Associations).Create(&member).Error; err != nil {
			if isDuplicate(err) {
				return apperr.Conflict("%s is already a member of this project", user.Name)
			}
			return fmt.Errorf("failed to add member: %w", err)
		}
		member.User = *user

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityMemberAdded,
			Description:  fmt.Sprintf("Added %s to %q as %s", user.Name, project.Name, strings.ToLower(string(in.Role))),
			ProjectID:    projectID,
		}, map[string]string{"user_id": user.ID, "role": string(in.Role)})
	})

	if err != nil {
		return nil, err
	}

	return &member, nil
}

func UpdateMemberRole(ctx context.Context, db *gorm.DB, actorID, projectID, memberID string, role models.MemberRole) (*models.ProjectMember, error) {
	var member *models.ProjectMember

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		member, err = getMember(ctx, tx, projectID, memberID)
		if err != nil {
			return err
		}

		from := member.Role
		if err := tx.Model(&models.ProjectMember{}).Where("id = ?", member.ID).Update("role", role).Error; err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}
		member.Role = role

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityMemberUpdated,
			Description:  fmt.Sprintf("Changed %s's role to %s", member.User.Name, strings.ToLower(string(role))),
			ProjectID:    projectID,
		}, map[string]string{"user_id": member.UserID, "from": string(from), "to": string(role)})
	})

	if err != nil {
		return nil, err
	}

	return member, nil
}

func RemoveMember(ctx context.Context, db *gorm.DB, actorID, projectID, memberID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := getMember(ctx, tx, projectID, memberID)
		if err != nil {
			return err
		}

		if err := tx.Where("id = ?", member.ID).Delete(&models.ProjectMember{}).Error; err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		return appendActivity(ctx, tx, models.ActivityLog{
			UserID:       actorID,
			ActivityType: models.ActivityMemberRemoved,
			Description:  fmt.Sprintf("Removed %s from the project", member.User.Name),
			ProjectID:    projectID,
		}, map[string]string{"user_id": member.UserID})
	})
}
