package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/service"
)

type contractorRequest struct {
	Name           string  `json:"name" binding:"required"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	RegistrationNo *string `json:"registration_no"`
	Address        *string `json:"address"`
}

type contractorResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	RegistrationNo *string `json:"registration_no"`
	Address        *string `json:"address"`
	CreatedAt      string  `json:"created_at"`
}

func toContractorResponse(m model.Contractor) contractorResponse {
	return contractorResponse{
		ID:             m.ID,
		Name:           m.Name,
		Phone:          m.Phone,
		Email:          m.Email,
		RegistrationNo: m.RegistrationNo,
		Address:        m.Address,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listContractors(c *gin.Context) {
	contractors, err := h.services.Contractors.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]contractorResponse, 0, len(contractors))
	for _, contractor := range contractors {
		out = append(out, toContractorResponse(contractor))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getContractor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	contractor, err := h.services.Contractors.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractorResponse(*contractor))
}

func (h *Handler) createContractor(c *gin.Context) {
	var req contractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractor, err := h.services.Contractors.Create(c.Request.Context(), service.ContractorInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		RegistrationNo: req.RegistrationNo,
		Address:        req.Address,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContractorResponse(*contractor))
}

func (h *Handler) updateContractor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req contractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractor, err := h.services.Contractors.Update(c.Request.Context(), id, service.ContractorInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		RegistrationNo: req.RegistrationNo,
		Address:        req.Address,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractorResponse(*contractor))
}

func (h *Handler) deleteContractor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Contractors.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
