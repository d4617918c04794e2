package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/service"
)

type awardRequest struct {
	ProjectID             int64    `json:"project_id" binding:"required"`
	ContractorID          int64    `json:"contractor_id" binding:"required"`
	TenderID              *string  `json:"tender_id"`
	ProcurementMethod     *string  `json:"procurement_method"`
	ContractValue         *float64 `json:"contract_value"`
	AwardDate             *string  `json:"award_date"`
	ContractorShareHint   *float64 `json:"contractor_share_hint"`
	PerformanceFlag       *bool    `json:"performance_flag"`
	PerformanceFlagReason *string  `json:"performance_flag_reason"`
}

type awardResponse struct {
	ID                    int64    `json:"id"`
	ProjectID             int64    `json:"project_id"`
	ContractorID          int64    `json:"contractor_id"`
	TenderID              *string  `json:"tender_id"`
	ProcurementMethod     *string  `json:"procurement_method"`
	ContractValue         *float64 `json:"contract_value"`
	AwardDate             *string  `json:"award_date"`
	ContractorShareHint   *float64 `json:"contractor_share_hint"`
	PerformanceFlag       bool     `json:"performance_flag"`
	PerformanceFlagReason *string  `json:"performance_flag_reason"`
	CreatedAt             string   `json:"created_at"`
}

func toAwardResponse(m model.ProcurementAward) awardResponse {
	return awardResponse{
		ID:                    m.ID,
		ProjectID:             m.ProjectID,
		ContractorID:          m.ContractorID,
		TenderID:              m.TenderID,
		ProcurementMethod:     m.ProcurementMethod,
		ContractValue:         m.ContractValue,
		AwardDate:             formatDatePtr(m.AwardDate),
		ContractorShareHint:   m.ContractorShareHint,
		PerformanceFlag:       m.PerformanceFlag,
		PerformanceFlagReason: m.PerformanceFlagReason,
		CreatedAt:             m.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listAwards(c *gin.Context) {
	awards, err := h.services.Awards.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]awardResponse, 0, len(awards))
	for _, award := range awards {
		out = append(out, toAwardResponse(award))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getAward(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	award, err := h.services.Awards.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAwardResponse(*award))
}

func (h *Handler) createAward(c *gin.Context) {
	input, ok := h.bindAward(c)
	if !ok {
		return
	}

	award, err := h.services.Awards.Create(c.Request.Context(), *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAwardResponse(*award))
}

func (h *Handler) updateAward(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := h.bindAward(c)
	if !ok {
		return
	}

	award, err := h.services.Awards.Update(c.Request.Context(), id, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAwardResponse(*award))
}

func (h *Handler) deleteAward(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Awards.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindAward(c *gin.Context) (*service.AwardInput, bool) {
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	awardDate, err := parseOptionalDate(req.AwardDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid award_date"})
		return nil, false
	}

	return &service.AwardInput{
		ProjectID:             req.ProjectID,
		ContractorID:          req.ContractorID,
		TenderID:              req.TenderID,
		ProcurementMethod:     req.ProcurementMethod,
		ContractValue:         req.ContractValue,
		AwardDate:             awardDate,
		ContractorShareHint:   req.ContractorShareHint,
		PerformanceFlag:       req.PerformanceFlag,
		PerformanceFlagReason: req.PerformanceFlagReason,
	}, true
}
