package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/service"
)

type projectRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      *string  `json:"description"`
	Category         string   `json:"category" binding:"required"`
	Status           string   `json:"status" binding:"required"`
	Budget           float64  `json:"budget"`
	Spent            *float64 `json:"spent"`
	Progress         *float64 `json:"progress"`
	ConstituencyCode string   `json:"constituency_code" binding:"required"`
	StartDate        *string  `json:"start_date"`
	CompletionDate   *string  `json:"completion_date"`
	IsMock           *bool    `json:"is_mock"`
	SourceName       *string  `json:"source_name"`
	SourceURL        *string  `json:"source_url"`
	SourceDocRef     *string  `json:"source_doc_ref"`
}

type projectResponse struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Description      *string  `json:"description"`
	Category         string   `json:"category"`
	Status           string   `json:"status"`
	Budget           float64  `json:"budget"`
	Spent            float64  `json:"spent"`
	Progress         float64  `json:"progress"`
	ConstituencyCode string   `json:"constituency_code"`
	StartDate        *string  `json:"start_date"`
	CompletionDate   *string  `json:"completion_date"`
	IsMock           bool     `json:"is_mock"`
	SourceName       *string  `json:"source_name"`
	SourceURL        *string  `json:"source_url"`
	SourceDocRef     *string  `json:"source_doc_ref"`
	LastUpdated      string   `json:"last_updated"`
	ConstituencyName string   `json:"constituency_name,omitempty"`
	County           string   `json:"county,omitempty"`
	MPName           string   `json:"mp_name,omitempty"`
	ContractorName   *string  `json:"contractor_name,omitempty"`
	TenderID         *string  `json:"tender_id,omitempty"`
	ContractValue    *float64 `json:"contract_value,omitempty"`
}

func (h *Handler) listProjects(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	projects, err := h.services.Projects.List(c.Request.Context(), service.ListProjectsInput{
		ConstituencyCode: c.Query("constituency_code"),
		Category:         c.Query("category"),
		Status:           c.Query("status"),
		Sort:             c.Query("sort"),
		Offset:           offset,
		Limit:            limit,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, detailResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.services.Projects.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, detailResponse(*detail))
}

func (h *Handler) createProject(c *gin.Context) {
	input, ok := h.bindProject(c)
	if !ok {
		return
	}

	project, err := h.services.Projects.Create(c.Request.Context(), *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, baseResponse(*project))
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := h.bindProject(c)
	if !ok {
		return
	}

	project, err := h.services.Projects.Update(c.Request.Context(), id, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, baseResponse(*project))
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Projects.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindProject(c *gin.Context) (*service.ProjectInput, bool) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return nil, false
	}
	completion, err := parseOptionalDate(req.CompletionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completion_date"})
		return nil, false
	}

	return &service.ProjectInput{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Status:           req.Status,
		Budget:           req.Budget,
		Spent:            req.Spent,
		Progress:         req.Progress,
		ConstituencyCode: req.ConstituencyCode,
		StartDate:        start,
		CompletionDate:   completion,
		IsMock:           req.IsMock,
		SourceName:       req.SourceName,
		SourceURL:        req.SourceURL,
		SourceDocRef:     req.SourceDocRef,
	}, true
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return parseDate(*raw)
}

func baseResponse(p model.Project) projectResponse {
	return projectResponse{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Category:         string(p.Category),
		Status:           string(p.Status),
		Budget:           p.Budget,
		Spent:            p.SpentAmount(),
		Progress:         p.ProgressPct(),
		ConstituencyCode: p.ConstituencyCode,
		StartDate:        formatDatePtr(p.StartDate),
		CompletionDate:   formatDatePtr(p.CompletionDate),
		IsMock:           p.IsMock,
		SourceName:       p.SourceName,
		SourceURL:        p.SourceURL,
		SourceDocRef:     p.SourceDocRef,
		LastUpdated:      p.LastUpdated.Format(time.RFC3339),
	}
}

func detailResponse(d model.ProjectDetail) projectResponse {
	resp := baseResponse(d.Project)
	resp.ConstituencyName = d.ConstituencyName
	resp.County = d.County
	resp.MPName = d.MPName
	resp.ContractorName = d.ContractorName
	resp.TenderID = d.TenderID
	resp.ContractValue = d.ContractValue
	return resp
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}
