package graphql

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/bookshelf/pkg/authors"
	"github.com/shishobooks/bookshelf/pkg/binder"
	"github.com/shishobooks/bookshelf/pkg/books"
)

// RegisterRoutesWithGroup mounts the GraphQL endpoint at the root of g. The
// binder is reused to validate mutation inputs.
func RegisterRoutesWithGroup(g *echo.Group, authorService *authors.Service, bookService *books.Service, b *binder.Binder) error {
	schema, err := NewSchema(&resolver{
		authorService: authorService,
		bookService:   bookService,
		binder:        b,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h := &handler{schema: schema}

	g.POST("", h.execute)

	return nil
}
