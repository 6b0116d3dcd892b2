package authors

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers author routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, authorService *Service) {
	h := &handler{
		authorService: authorService,
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.deleteAuthor)
}
