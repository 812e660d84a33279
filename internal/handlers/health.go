package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/db"
)

var errDatabaseUnavailable = errors.New("database not connected")

func HealthCheck(c *gin.Context) {
	status := "ok"
	database := "ok"
	code := http.StatusOK

	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := ping(pingCtx); err != nil {
		status = "degraded"
		database = err.Error()
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  database,
		"message":   "Taskboard is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func ping(ctx context.Context) error {
	if db.DB == nil {
		return errDatabaseUnavailable
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
