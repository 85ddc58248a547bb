package admin

import (
	"strconv"

	"github.com/aangan-site/aangan-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns the admin overview counters.
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	forceRefresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	overview, err := h.DashboardService.Overview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch overview", err)
		return
	}
	response.Success(c, overview)
}
