package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aangan-site/aangan-api/internal/http/response"
	"github.com/aangan-site/aangan-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetBlogs returns a page of posts, most-recently-touched first.
func (h *Handler) GetBlogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.Config.Blog.PageSize)))
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

// GetBlogSections returns the landing-page section bundle.
func (h *Handler) GetBlogSections(c *gin.Context) {
	sections, err := h.BlogService.Sections()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch blog sections", err)
		return
	}
	response.Success(c, sections)
}

// GetMostLikedBlogs returns the most-liked posts.
func (h *Handler) GetMostLikedBlogs(c *gin.Context) {
	blogs, err := h.BlogService.MostLiked()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch most liked blogs", err)
		return
	}
	response.Success(c, blogs)
}

// GetBlogBySlug returns a single post by slug.
func (h *Handler) GetBlogBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "slug is required", nil)
		return
	}

	blog, err := h.BlogService.GetBySlug(slug)
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

// EngageRequest carries the anonymous device identity for like writes.
type EngageRequest struct {
	DeviceID string `json:"deviceId"`
}

// LikeBlog records a like for the calling device.
func (h *Handler) LikeBlog(c *gin.Context) {
	h.engage(c, true)
}

// UnlikeBlog removes the calling device's like.
func (h *Handler) UnlikeBlog(c *gin.Context) {
	h.engage(c, false)
}

func (h *Handler) engage(c *gin.Context, like bool) {
	id := c.Param("id")

	var req EngageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	var result *service.LikeResult
	var err error
	if like {
		result, err = h.BlogService.Like(id, req.DeviceID)
	} else {
		result, err = h.BlogService.Unlike(id, req.DeviceID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeviceIDRequired):
			respondError(c, response.CodeBadRequest, "device id is required", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "blog not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update like", err)
		}
		return
	}
	response.Success(c, result)
}
