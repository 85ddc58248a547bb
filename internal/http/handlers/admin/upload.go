package admin

import (
	"errors"

	"github.com/aangan-site/aangan-api/internal/http/response"
	"github.com/aangan-site/aangan-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadImage accepts a multipart image and returns its public URL.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", err)
		return
	}
	scene := c.DefaultPostForm("scene", "")

	url, err := h.UploadService.SaveFile(c.Request.Context(), file, scene)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			respondError(c, response.CodeBadRequest, "file exceeds the size limit", nil)
		case errors.Is(err, service.ErrUnsupportedFileType):
			respondError(c, response.CodeBadRequest, "unsupported file type", nil)
		case errors.Is(err, service.ErrImageTooLarge):
			respondError(c, response.CodeBadRequest, "image dimensions exceed the limit", nil)
		default:
			respondError(c, response.CodeInternal, "failed to store file", err)
		}
		return
	}

	response.Success(c, gin.H{"url": url})
}
