package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var healthDB *gorm.DB

func SetHealthDB(db *gorm.DB) {
	healthDB = db
}

// Health reports whether the database answers a ping within two seconds.
func Health(c *gin.Context) {
	status := gin.H{"status": "ok", "time": time.Now().UTC()}
	if healthDB == nil {
		c.JSON(http.StatusOK, status)
		return
	}

	sqlDB, err := healthDB.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["database"] = "ok"
	c.JSON(http.StatusOK, status)
}
