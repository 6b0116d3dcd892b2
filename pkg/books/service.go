package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/bookshelf/pkg/database"
	"github.com/shishobooks/bookshelf/pkg/errcodes"
	"github.com/shishobooks/bookshelf/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *int
}

type ListBooksOptions struct {
	AuthorID *int
	Limit    *int
	Offset   *int
}

// UpdateBookOptions holds the fields to change. Nil fields are left alone. A
// non-nil Author reassigns the book and must already exist.
type UpdateBookOptions struct {
	Title         *string
	Description   *string
	PublishedYear *int
	StockCount    *int
	Author        *models.Author
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// withAuthor loads the book's author along with every book the author owns.
func withAuthor(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("Author").
		Relation("Author.Books", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("b.id ASC")
		})
}

func normalizeAuthor(book *models.Book) {
	if book.Author != nil && book.Author.Books == nil {
		book.Author.Books = []*models.Book{}
	}
}

// CreateBook persists a book for an author the caller has already resolved.
// On success book is replaced by the stored row with its author reloaded.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if book.Author == nil || book.Author.ID == 0 {
		return errcodes.ValidationError(`"author" is required`)
	}
	book.AuthorID = book.Author.ID

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	created, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	if err != nil {
		return err
	}
	*book = *created

	return nil
}

// RetrieveBook returns the book with its author loaded, or
// errcodes.NotFound("Book") when no row matches.
func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book).
		Apply(withAuthor)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	normalizeAuthor(book)
	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	books := []*models.Book{}

	q := svc.db.
		NewSelect().
		Model(&books).
		Apply(withAuthor).
		Order("b.id ASC")

	if opts.AuthorID != nil {
		q = q.Where("b.author_id = ?", *opts.AuthorID)
	}
	q = database.Paginate(q, opts.Limit, opts.Offset)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, book := range books {
		normalizeAuthor(book)
	}
	return books, nil
}

// UpdateBook merges the supplied fields into the stored book and writes only
// the columns that changed. The book is reloaded afterwards so that its author
// and the author's books reflect the write.
func (svc *Service) UpdateBook(ctx context.Context, id int, opts UpdateBookOptions) (*models.Book, error) {
	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return nil, err
	}

	columns := []string{}
	if opts.Title != nil && *opts.Title != book.Title {
		book.Title = *opts.Title
		columns = append(columns, "title")
	}
	if opts.Description != nil && *opts.Description != book.Description {
		book.Description = *opts.Description
		columns = append(columns, "description")
	}
	if opts.PublishedYear != nil && *opts.PublishedYear != book.PublishedYear {
		book.PublishedYear = *opts.PublishedYear
		columns = append(columns, "published_year")
	}
	if opts.StockCount != nil && *opts.StockCount != book.StockCount {
		book.StockCount = *opts.StockCount
		columns = append(columns, "stock_count")
	}
	if opts.Author != nil && opts.Author.ID != book.AuthorID {
		book.AuthorID = opts.Author.ID
		columns = append(columns, "author_id")
	}
	if len(columns) == 0 {
		return book, nil
	}

	book.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err = svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
}

// DeleteBook removes the book and returns it as it was before deletion.
func (svc *Service) DeleteBook(ctx context.Context, id int) (*models.Book, error) {
	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return nil, err
	}

	_, err = svc.db.
		NewDelete().
		Model(book).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return book, nil
}
