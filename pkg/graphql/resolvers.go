package graphql

import (
	"context"
	"net/http"

	gql "github.com/graphql-go/graphql"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/shishobooks/bookshelf/pkg/authors"
	"github.com/shishobooks/bookshelf/pkg/binder"
	"github.com/shishobooks/bookshelf/pkg/books"
	"github.com/shishobooks/bookshelf/pkg/errcodes"
	"github.com/shishobooks/bookshelf/pkg/models"
)

type resolver struct {
	authorService *authors.Service
	bookService   *books.Service
	binder        *binder.Binder
}

// fail converts err into the *errcodes.Error handed back to graphql-go. The
// concrete type has to be returned unwrapped so that its extensions reach the
// response. Unexpected errors are logged and hidden behind Internal.
func fail(ctx context.Context, err error) error {
	e := errcodes.Classify(err)
	if e.HTTPCode == http.StatusInternalServerError {
		logger.FromContext(ctx).Err(err).Error("graphql resolver error")
	}
	return e
}

func intArg(p gql.ResolveParams, name string) *int {
	if v, ok := p.Args[name].(int); ok {
		return &v
	}
	return nil
}

func stringArg(p gql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

// decodeInput copies the "input" argument into payload and runs the same
// cleanup and validation the REST binder applies.
func (r *resolver) decodeInput(p gql.ResolveParams, payload interface{}) error {
	raw, err := json.Marshal(p.Args["input"])
	if err != nil {
		return errors.WithStack(err)
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return errcodes.MalformedPayload()
	}
	return r.binder.Validate(p.Context, payload)
}

func (r *resolver) authors(p gql.ResolveParams) (interface{}, error) {
	query := authors.ListAuthorsQuery{
		Search: stringArg(p, "search"),
		Limit:  intArg(p, "limit"),
		Offset: intArg(p, "offset"),
	}
	if err := r.binder.Validate(p.Context, &query); err != nil {
		return nil, fail(p.Context, err)
	}

	list, err := r.authorService.ListAuthors(p.Context, authors.ListAuthorsOptions{
		Search: query.Search,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return list, nil
}

func (r *resolver) author(p gql.ResolveParams) (interface{}, error) {
	author, err := r.authorService.RetrieveAuthor(p.Context, authors.RetrieveAuthorOptions{
		ID: intArg(p, "id"),
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return author, nil
}

func (r *resolver) books(p gql.ResolveParams) (interface{}, error) {
	query := books.ListBooksQuery{
		AuthorID: intArg(p, "authorId"),
		Limit:    intArg(p, "limit"),
		Offset:   intArg(p, "offset"),
	}
	if err := r.binder.Validate(p.Context, &query); err != nil {
		return nil, fail(p.Context, err)
	}

	list, err := r.bookService.ListBooks(p.Context, books.ListBooksOptions{
		AuthorID: query.AuthorID,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return list, nil
}

func (r *resolver) book(p gql.ResolveParams) (interface{}, error) {
	book, err := r.bookService.RetrieveBook(p.Context, books.RetrieveBookOptions{
		ID: intArg(p, "id"),
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return book, nil
}

func (r *resolver) createAuthor(p gql.ResolveParams) (interface{}, error) {
	payload := authors.CreateAuthorPayload{}
	if err := r.decodeInput(p, &payload); err != nil {
		return nil, fail(p.Context, err)
	}

	author := &models.Author{
		Name: payload.Name,
		Bio:  payload.Bio,
	}
	if err := r.authorService.CreateAuthor(p.Context, author); err != nil {
		return nil, fail(p.Context, err)
	}
	return author, nil
}

func (r *resolver) updateAuthor(p gql.ResolveParams) (interface{}, error) {
	payload := authors.UpdateAuthorPayload{}
	if err := r.decodeInput(p, &payload); err != nil {
		return nil, fail(p.Context, err)
	}

	author, err := r.authorService.UpdateAuthor(p.Context, *intArg(p, "id"), authors.UpdateAuthorOptions{
		Name: payload.Name,
		Bio:  payload.Bio,
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return author, nil
}

func (r *resolver) removeAuthor(p gql.ResolveParams) (interface{}, error) {
	author, err := r.authorService.DeleteAuthor(p.Context, *intArg(p, "id"))
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return author, nil
}

func (r *resolver) createBook(p gql.ResolveParams) (interface{}, error) {
	payload := books.CreateBookPayload{}
	if err := r.decodeInput(p, &payload); err != nil {
		return nil, fail(p.Context, err)
	}

	author, err := r.authorService.RetrieveAuthor(p.Context, authors.RetrieveAuthorOptions{
		ID: payload.AuthorID,
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}

	book := &models.Book{
		Title:         payload.Title,
		Description:   payload.Description,
		PublishedYear: *payload.PublishedYear,
		StockCount:    *payload.StockCount,
		Author:        author,
	}
	if err := r.bookService.CreateBook(p.Context, book); err != nil {
		return nil, fail(p.Context, err)
	}
	return book, nil
}

func (r *resolver) updateBook(p gql.ResolveParams) (interface{}, error) {
	payload := books.UpdateBookPayload{}
	if err := r.decodeInput(p, &payload); err != nil {
		return nil, fail(p.Context, err)
	}

	opts := books.UpdateBookOptions{
		Title:         payload.Title,
		Description:   payload.Description,
		PublishedYear: payload.PublishedYear,
		StockCount:    payload.StockCount,
	}
	if payload.AuthorID != nil {
		author, err := r.authorService.RetrieveAuthor(p.Context, authors.RetrieveAuthorOptions{
			ID: payload.AuthorID,
		})
		if err != nil {
			return nil, fail(p.Context, err)
		}
		opts.Author = author
	}

	book, err := r.bookService.UpdateBook(p.Context, *intArg(p, "id"), opts)
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return book, nil
}

func (r *resolver) deleteBook(p gql.ResolveParams) (interface{}, error) {
	if _, err := r.bookService.DeleteBook(p.Context, *intArg(p, "id")); err != nil {
		return nil, fail(p.Context, err)
	}
	return true, nil
}

func (r *resolver) authorBooks(p gql.ResolveParams) (interface{}, error) {
	author, ok := p.Source.(*models.Author)
	if !ok {
		return nil, fail(p.Context, errors.Errorf("unexpected author source %T", p.Source))
	}
	if author.Books != nil {
		return author.Books, nil
	}

	list, err := r.bookService.ListBooks(p.Context, books.ListBooksOptions{AuthorID: &author.ID})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return list, nil
}

func (r *resolver) bookAuthor(p gql.ResolveParams) (interface{}, error) {
	book, ok := p.Source.(*models.Book)
	if !ok {
		return nil, fail(p.Context, errors.Errorf("unexpected book source %T", p.Source))
	}
	if book.Author != nil {
		return book.Author, nil
	}

	author, err := r.authorService.RetrieveAuthor(p.Context, authors.RetrieveAuthorOptions{
		ID: &book.AuthorID,
	})
	if err != nil {
		return nil, fail(p.Context, err)
	}
	return author, nil
}
