package public

import "github.com/aangan-site/aangan-api/internal/provider"

// Handler serves visitor-facing endpoints.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
