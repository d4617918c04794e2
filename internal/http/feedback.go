package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/service"
)

type submitFeedbackRequest struct {
	ProjectID int64   `json:"project_id" binding:"required"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Message   string  `json:"message" binding:"required"`
}

type feedbackResponse struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Message   string  `json:"message"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

func toFeedbackResponse(m model.Feedback) feedbackResponse {
	return feedbackResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) submitFeedback(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.services.Feedback.Submit(c.Request.Context(), service.SubmitFeedbackInput{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFeedbackResponse(*feedback))
}

func (h *Handler) listFeedback(c *gin.Context) {
	feedback, err := h.services.Feedback.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]feedbackResponse, 0, len(feedback))
	for _, f := range feedback {
		out = append(out, toFeedbackResponse(f))
	}
	c.JSON(http.StatusOK, out)
}

type moderateFeedbackRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) moderateFeedback(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req moderateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Feedback.Moderate(c.Request.Context(), id, req.Status); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
