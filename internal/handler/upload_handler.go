package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/service"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
	"github.com/noah-isme/creator-campaign-api/pkg/response"
)

// UploadHandler accepts portfolio and insight screenshot uploads for a
// wizard session.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload godoc
// @Summary Attach files to a wizard session
// @Tags Wizard
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id}/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "invalid multipart payload"))
		return
	}
	files := form.File["files"]
	urls, err := h.uploads.Store(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.UploadResponse{URLs: urls}, nil)
}
