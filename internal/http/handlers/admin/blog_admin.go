package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aangan-site/aangan-api/internal/http/response"
	"github.com/aangan-site/aangan-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetBlogs lists posts for the management table.
func (h *Handler) GetBlogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := strings.TrimSpace(c.Query("search"))

	blogs, total, err := h.BlogService.List(search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch blogs", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, blogs, pagination)
}

// GetBlog returns one post by id.
func (h *Handler) GetBlog(c *gin.Context) {
	id := c.Param("id")

	blog, err := h.BlogService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "blog not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch blog", err)
		return
	}
	response.Success(c, blog)
}

// CreateBlogRequest is the create payload.
type CreateBlogRequest struct {
	Title        string     `json:"title" binding:"required"`
	Slug         string     `json:"slug"`
	HTML         string     `json:"html" binding:"required"`
	MinutesRead  int        `json:"minutesRead"`
	Categories   []string   `json:"categories"`
	ThumbnailURL string     `json:"thumbnailUrl" binding:"required"`
	Placement    string     `json:"placement"`
	IsFeatured   bool       `json:"isFeatured"`
	PublishedAt  *time.Time `json:"publishedAt"`
}

// CreateBlog stores a new post.
func (h *Handler) CreateBlog(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "title, html and thumbnailUrl are required", err)
		return
	}

	blog, err := h.BlogService.Create(service.CreateBlogInput{
		Title:        req.Title,
		Slug:         req.Slug,
		HTML:         req.HTML,
		MinutesRead:  req.MinutesRead,
		Categories:   req.Categories,
		ThumbnailURL: req.ThumbnailURL,
		Placement:    req.Placement,
		IsFeatured:   req.IsFeatured,
		PublishedAt:  req.PublishedAt,
	})
	if err != nil {
		respondBlogWriteError(c, err)
		return
	}
	response.Success(c, blog)
}

// UpdateBlogRequest is the partial update payload.
type UpdateBlogRequest struct {
	Title        *string    `json:"title"`
	Slug         *string    `json:"slug"`
	HTML         *string    `json:"html"`
	MinutesRead  *int       `json:"minutesRead"`
	Categories   []string   `json:"categories"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	IsFeatured   *bool      `json:"isFeatured"`
	PublishedAt  *time.Time `json:"publishedAt"`
}

// UpdateBlog applies a content update.
func (h *Handler) UpdateBlog(c *gin.Context) {
	id := c.Param("id")

	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	blog, err := h.BlogService.Update(id, service.UpdateBlogInput{
		Title:        req.Title,
		Slug:         req.Slug,
		HTML:         req.HTML,
		MinutesRead:  req.MinutesRead,
		Categories:   req.Categories,
		ThumbnailURL: req.ThumbnailURL,
		IsFeatured:   req.IsFeatured,
		PublishedAt:  req.PublishedAt,
	})
	if err != nil {
		respondBlogWriteError(c, err)
		return
	}
	response.Success(c, blog)
}

// PlacementRequest is the curatorial payload.
type PlacementRequest struct {
	Placement    *string `json:"placement"`
	IsFeatured   *bool   `json:"isFeatured"`
	MonthlyOrder []uint  `json:"monthlyOrder"`
}

// UpdateBlogPlacement applies a placement-only write.
func (h *Handler) UpdateBlogPlacement(c *gin.Context) {
	id := c.Param("id")

	var req PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	blog, err := h.BlogService.UpdatePlacement(id, service.PlacementInput{
		Placement:    req.Placement,
		IsFeatured:   req.IsFeatured,
		MonthlyOrder: req.MonthlyOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlacement):
			respondError(c, response.CodeBadRequest, "placement update requires at least one field", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "blog not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update placement", err)
		}
		return
	}
	response.Success(c, blog)
}

// DeleteBlog hard-removes a post. A repeat delete still reports
// success.
func (h *Handler) DeleteBlog(c *gin.Context) {
	id := c.Param("id")

	if err := h.BlogService.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete blog", err)
		return
	}
	response.SuccessWithMsg(c, "blog deleted", nil)
}

func respondBlogWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		respondError(c, response.CodeBadRequest, "title is required", nil)
	case errors.Is(err, service.ErrHTMLRequired):
		respondError(c, response.CodeBadRequest, "html content is required", nil)
	case errors.Is(err, service.ErrThumbnailRequired):
		respondError(c, response.CodeBadRequest, "thumbnail url is required", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "a blog with this slug already exists", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "blog not found", nil)
	default:
		respondError(c, response.CodeInternal, "failed to save blog", err)
	}
}
