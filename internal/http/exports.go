package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanjala/cdf-tracker/internal/service"
)

func (h *Handler) exportProjects(c *gin.Context) {
	result, err := h.services.Exports.ProjectRegister(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) exportConstituencyReport(c *gin.Context) {
	result, err := h.services.Exports.ConstituencyReport(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, result)
}

func writeAttachment(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Type", result.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
