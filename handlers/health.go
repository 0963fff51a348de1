package handlers

import (
	"net/http"

	"rapstation/utils"

	"github.com/gin-gonic/gin"
)

// Liveness always answers 200 and includes the last dependency snapshot when known.
func Liveness(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok", "message": "Hi, I'm RapStation"}
		if monitor != nil {
			body["dependencies"] = monitor.Status()
		}
		c.JSON(http.StatusOK, body)
	}
}

// Readiness answers 503 while any dependency check is failing.
func Readiness(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if monitor == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		st := monitor.Status()
		if !st.Healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": st})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "dependencies": st})
	}
}
