package admin

import (
	"errors"

	"github.com/aangan-site/aangan-api/internal/http/response"
	"github.com/aangan-site/aangan-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ImportDocx converts an uploaded .docx document to editor HTML.
func (h *Handler) ImportDocx(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", err)
		return
	}

	html, err := h.ImportService.ImportDocx(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDocx) {
			respondError(c, response.CodeBadRequest, "file is not a valid docx document", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to convert document", err)
		return
	}

	response.Success(c, gin.H{"html": html})
}
