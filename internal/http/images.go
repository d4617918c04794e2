package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wanjala/cdf-tracker/internal/http/middleware"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/service"
)

type publicImageResponse struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	Caption    string `json:"caption"`
	UploadedBy string `json:"uploaded_by"`
	UploadedAt string `json:"uploaded_at"`
	URL        string `json:"url"`
}

func toPublicImageResponse(m model.PublicImage) publicImageResponse {
	return publicImageResponse{
		ID:         m.ID,
		Filename:   m.Filename,
		Caption:    m.Caption,
		UploadedBy: m.UploadedBy,
		UploadedAt: m.UploadedAt.Format(time.RFC3339),
		URL:        m.URL,
	}
}

func (h *Handler) uploadImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, hasPrincipal := middleware.MustPrincipal(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	image, err := h.services.Images.Upload(c.Request.Context(), service.UploadImageInput{
		ProjectID:   id,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		Caption:     optionalForm(c, "caption"),
		UploadedBy:  uploaderName(c.PostForm("uploaded_by"), principal, hasPrincipal),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          image.ID,
		"project_id":  image.ProjectID,
		"filename":    image.Filename,
		"object_name": image.ObjectName,
	})
}

func (h *Handler) listPublicImages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	images, err := h.services.Images.ListPublic(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]publicImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, toPublicImageResponse(img))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) viewImage(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseID(c, "imageID")
	if !ok {
		return
	}

	url, err := h.services.Images.ViewURL(c.Request.Context(), projectID, imageID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// uploaderName prefers the submitted uploaded_by value, then the
// authenticated principal; "admin" only remains as the last-resort default.
func uploaderName(formValue string, principal model.Principal, hasPrincipal bool) string {
	if formValue != "" {
		return formValue
	}
	if hasPrincipal {
		return principal.Username
	}
	return "admin"
}

func optionalForm(c *gin.Context, key string) *string {
	value := c.PostForm(key)
	if value == "" {
		return nil
	}
	return &value
}
