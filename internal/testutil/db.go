// Package testutil provides an in-memory database wired the same way as
// production, plus small fixtures for handler and store tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/monocle-dev/taskboard/db"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const Password = "password123"

// NewDB opens a private in-memory SQLite database with foreign keys on,
// migrates it, and installs it as db.DB for the duration of the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	conn, err := db.Open("sqlite", dsn, logger.Silent)
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))

	previous := db.DB
	db.DB = conn

	t.Cleanup(func() {
		db.DB = previous
		_ = sqlDB.Close()
	})

	return conn
}

func CreateUser(t *testing.T, conn *gorm.DB, name, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, PasswordHash: string(hash)}
	require.NoError(t, conn.Create(&user).Error)

	return user
}

func CreateProject(t *testing.T, conn *gorm.DB, owner models.User, name string, status models.ProjectStatus) models.Project {
	t.Helper()

	project := models.Project{
		Name:    name,
		Status:  status,
		DueDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		OwnerID: owner.ID,
	}
	require.NoError(t, conn.Omit("Owner").Create(&project).Error)

	return project
}

func CreateTask(t *testing.T, conn *gorm.DB, project models.Project, assignee models.User, title string, status models.TaskStatus, due time.Time) models.Task {
	t.Helper()

	task := models.Task{
		Title:      title,
		Status:     status,
		Priority:   models.PriorityMedium,
		DueDate:    due,
		ProjectID:  project.ID,
		AssigneeID: assignee.ID,
	}
	require.NoError(t, conn.Omit("Project", "Assignee").Create(&task).Error)

	return task
}

// SetCreatedAt rewrites the created_at column of the row with id, for tests
// that pin creation order instead of relying on clock resolution.
func SetCreatedAt(t *testing.T, conn *gorm.DB, model interface{}, id string, at time.Time) {
	t.Helper()
	require.NoError(t, conn.Model(model).Where("id = ?", id).UpdateColumn("created_at", at.UTC()).Error)
}

// Count returns the number of rows of model matching the optional condition.
func Count(t *testing.T, conn *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	q := conn.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)

	return n
}
