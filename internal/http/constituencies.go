package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type constituencyRequest struct {
	Code       string   `json:"code" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	County     string   `json:"county" binding:"required"`
	MPName     string   `json:"mp_name" binding:"required"`
	Population *int64   `json:"population"`
	PASScore   *float64 `json:"pas_score"`
}

type constituencyResponse struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	County     string   `json:"county"`
	MPName     string   `json:"mp_name"`
	Population *int64   `json:"population"`
	PASScore   *float64 `json:"pas_score"`
}

func toConstituencyResponse(m model.Constituency) constituencyResponse {
	return constituencyResponse{
		Code:       m.Code,
		Name:       m.Name,
		County:     m.County,
		MPName:     m.MPName,
		Population: m.Population,
		PASScore:   m.PASScore,
	}
}

func toConstituencyResponses(items []model.Constituency) []constituencyResponse {
	out := make([]constituencyResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toConstituencyResponse(item))
	}
	return out
}

func (h *Handler) listConstituencies(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	constituencies, err := h.services.Constituencies.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConstituencyResponses(constituencies))
}

func (h *Handler) getConstituency(c *gin.Context) {
	constituency, err := h.services.Constituencies.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConstituencyResponse(*constituency))
}

func (h *Handler) searchConstituencies(c *gin.Context) {
	constituencies, err := h.services.Constituencies.Search(c.Request.Context(), c.Query("name"), c.Query("county"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConstituencyResponses(constituencies))
}

func (h *Handler) createConstituency(c *gin.Context) {
	var req constituencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	constituency, err := h.services.Constituencies.Create(c.Request.Context(), model.Constituency{
		Code:       req.Code,
		Name:       req.Name,
		County:     req.County,
		MPName:     req.MPName,
		Population: req.Population,
		PASScore:   req.PASScore,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toConstituencyResponse(*constituency))
}

type updateConstituencyRequest struct {
	Name       string   `json:"name" binding:"required"`
	County     string   `json:"county" binding:"required"`
	MPName     string   `json:"mp_name" binding:"required"`
	Population *int64   `json:"population"`
	PASScore   *float64 `json:"pas_score"`
}

func (h *Handler) updateConstituency(c *gin.Context) {
	var req updateConstituencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	constituency, err := h.services.Constituencies.Update(c.Request.Context(), model.Constituency{
		Code:       c.Param("code"),
		Name:       req.Name,
		County:     req.County,
		MPName:     req.MPName,
		Population: req.Population,
		PASScore:   req.PASScore,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConstituencyResponse(*constituency))
}

func (h *Handler) deleteConstituency(c *gin.Context) {
	if err := h.services.Constituencies.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
