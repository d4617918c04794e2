package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) analyticsOverview(c *gin.Context) {
	overview, err := h.services.Analytics.Overview(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *Handler) analyticsLeaderboard(c *gin.Context) {
	board, err := h.services.Analytics.Leaderboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *Handler) projectRisk(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	risk, err := h.services.Analytics.ProjectRisk(c.Request.Context(), id, false)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, risk)
}

func (h *Handler) projectSignals(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	risk, err := h.services.Analytics.ProjectRisk(c.Request.Context(), id, true)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, risk)
}
