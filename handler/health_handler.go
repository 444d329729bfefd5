package handler

import (
	"os"
	"time"

	"main/dto"
	"main/utils"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// HealthCheck is the unauthenticated liveness probe.
func HealthCheck(c *gin.Context) {
	utils.Success(c, dto.HealthResponse{
		Message:     "API is running",
		Environment: os.Getenv("GO_ENV"),
		Timestamp:   time.Now().UTC(),
		UptimeSec:   time.Since(startedAt).Seconds(),
		CPUPercent:  utils.GetCPUUsage(),
	})
}
