package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/bookshelf/pkg/authors"
	"github.com/shishobooks/bookshelf/pkg/errcodes"
	"github.com/shishobooks/bookshelf/pkg/models"
)

type handler struct {
	bookService   *Service
	authorService *authors.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		AuthorID: params.AuthorID,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Resolve the author before anything is written.
	author, err := h.authorService.RetrieveAuthor(ctx, authors.RetrieveAuthorOptions{
		ID: params.AuthorID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Title:         params.Title,
		Description:   params.Description,
		PublishedYear: *params.PublishedYear,
		StockCount:    *params.StockCount,
		Author:        author,
	}
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateBookOptions{
		Title:         params.Title,
		Description:   params.Description,
		PublishedYear: params.PublishedYear,
		StockCount:    params.StockCount,
	}
	if params.AuthorID != nil {
		opts.Author, err = h.authorService.RetrieveAuthor(ctx, authors.RetrieveAuthorOptions{
			ID: params.AuthorID,
		})
		if err != nil {
			return errors.WithStack(err)
		}
	}

	_, err = h.bookService.UpdateBook(ctx, id, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]string{
		"message": "Book updated successfully.",
	}))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	_, err = h.bookService.DeleteBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]string{
		"message": "Book deleted successfully.",
	}))
}
