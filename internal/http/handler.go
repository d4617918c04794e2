package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wanjala/cdf-tracker/internal/service"
)

type Services struct {
	Projects       *service.ProjectService
	Constituencies *service.ConstituencyService
	Contractors    *service.ContractorService
	Awards         *service.AwardService
	Feedback       *service.FeedbackService
	Users          *service.UserService
	Auth           *service.AuthService
	Analytics      *service.AnalyticsService
	Exports        *service.ExportService
	Images         *service.ImageService
}

type Handler struct {
	services Services
	log      zerolog.Logger
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// Register wires the API routes. Public routes serve citizen-facing reads,
// the authenticated group covers back-office mutations, and the admin group
// is user management only.
func (h *Handler) Register(router *gin.Engine, authMiddleware, adminMiddleware gin.HandlerFunc) {
	api := router.Group("/api/v1")

	api.POST("/auth/login", h.login)
	api.GET("/projects", h.listProjects)
	api.GET("/projects/:id", h.getProject)
	api.GET("/projects/:id/risk", h.projectRisk)
	api.GET("/projects/:id/signals", h.projectSignals)
	api.GET("/projects/:id/images/public", h.listPublicImages)
	api.GET("/projects/:id/images/:imageID/view", h.viewImage)
	api.GET("/constituencies", h.listConstituencies)
	api.GET("/constituencies/search", h.searchConstituencies)
	api.GET("/constituencies/:code", h.getConstituency)
	api.POST("/feedback", h.submitFeedback)
	api.GET("/analytics/overview", h.analyticsOverview)
	api.GET("/analytics/leaderboard", h.analyticsLeaderboard)

	protected := api.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/auth/me", h.me)
	protected.POST("/projects", h.createProject)
	protected.PUT("/projects/:id", h.updateProject)
	protected.DELETE("/projects/:id", h.deleteProject)
	protected.POST("/projects/:id/images", h.uploadImage)
	protected.GET("/feedback", h.listFeedback)
	protected.PATCH("/feedback/:id/status", h.moderateFeedback)
	protected.GET("/contractors", h.listContractors)
	protected.POST("/contractors", h.createContractor)
	protected.GET("/contractors/:id", h.getContractor)
	protected.PUT("/contractors/:id", h.updateContractor)
	protected.DELETE("/contractors/:id", h.deleteContractor)
	protected.GET("/procurement-awards", h.listAwards)
	protected.POST("/procurement-awards", h.createAward)
	protected.GET("/procurement-awards/:id", h.getAward)
	protected.PUT("/procurement-awards/:id", h.updateAward)
	protected.DELETE("/procurement-awards/:id", h.deleteAward)
	protected.POST("/constituencies", h.createConstituency)
	protected.PUT("/constituencies/:code", h.updateConstituency)
	protected.DELETE("/constituencies/:code", h.deleteConstituency)
	protected.POST("/exports/projects", h.exportProjects)
	protected.POST("/exports/constituencies/:code/report", h.exportConstituencyReport)

	admin := api.Group("/users")
	admin.Use(authMiddleware, adminMiddleware)
	admin.GET("", h.listUsers)
	admin.POST("", h.createUser)
	admin.PATCH("/:id/role", h.changeUserRole)
	admin.PATCH("/:id/status", h.changeUserStatus)
	admin.POST("/:id/reset-password", h.resetUserPassword)
	admin.DELETE("/:id", h.deleteUser)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, service.ErrInvalidInput
}
