package books

import (
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/bookshelf/pkg/authors"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
// Creating or reassigning a book resolves its author through authorService.
func RegisterRoutesWithGroup(g *echo.Group, bookService *Service, authorService *authors.Service) {
	h := &handler{
		bookService:   bookService,
		authorService: authorService,
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.deleteBook)
}
