package handler

import (
	"strconv"

	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *usecase.StatsService
}

func NewStatsHandler(statsService *usecase.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns the caller's note counters and top-10 language
// distribution.
func (h *StatsHandler) GetStats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	stats, err := h.statsService.Summary(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, stats)
}

// GetTagStats returns the caller's most used tags (default top 20).
func (h *StatsHandler) GetTagStats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tags, err := h.statsService.TagStats(c.Request.Context(), user.ID, limit)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, tags)
}
