package authors

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shishobooks/bookshelf/pkg/database"
	"github.com/shishobooks/bookshelf/pkg/errcodes"
	"github.com/shishobooks/bookshelf/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveAuthorOptions struct {
	ID *int
}

type ListAuthorsOptions struct {
	Search *string
	Limit  *int
	Offset *int
}

// UpdateAuthorOptions holds the fields to change. Nil fields are left alone.
type UpdateAuthorOptions struct {
	Name *string
	Bio  *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func booksByID(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("b.id ASC")
}

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	now := time.Now()
	if author.CreatedAt.IsZero() {
		author.CreatedAt = now
	}
	author.UpdatedAt = author.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(author).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	if author.Books == nil {
		author.Books = []*models.Book{}
	}
	return nil
}

// RetrieveAuthor returns the author with its books loaded, or
// errcodes.NotFound("Author") when no row matches.
func (svc *Service) RetrieveAuthor(ctx context.Context, opts RetrieveAuthorOptions) (*models.Author, error) {
	author := &models.Author{}

	q := svc.db.
		NewSelect().
		Model(author).
		Relation("Books", booksByID)

	if opts.ID != nil {
		q = q.Where("a.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Author")
		}
		return nil, errors.WithStack(err)
	}

	if author.Books == nil {
		author.Books = []*models.Book{}
	}
	return author, nil
}

func (svc *Service) ListAuthors(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, error) {
	authors := []*models.Author{}

	q := svc.db.
		NewSelect().
		Model(&authors).
		Relation("Books", booksByID).
		Order("a.id ASC")

	if opts.Search != nil && *opts.Search != "" {
		search := "%" + strings.ToLower(*opts.Search) + "%"
		q = q.Where("LOWER(a.name) LIKE ?", search)
	}
	q = database.Paginate(q, opts.Limit, opts.Offset)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, author := range authors {
		if author.Books == nil {
			author.Books = []*models.Book{}
		}
	}
	return authors, nil
}

// UpdateAuthor merges the supplied fields into the stored author and writes
// only the columns that changed. The merged author is returned.
func (svc *Service) UpdateAuthor(ctx context.Context, id int, opts UpdateAuthorOptions) (*models.Author, error) {
	author, err := svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &id})
	if err != nil {
		return nil, err
	}

	columns := []string{}
	if opts.Name != nil && *opts.Name != author.Name {
		author.Name = *opts.Name
		columns = append(columns, "name")
	}
	if opts.Bio != nil && *opts.Bio != author.Bio {
		author.Bio = *opts.Bio
		columns = append(columns, "bio")
	}
	if len(columns) == 0 {
		return author, nil
	}

	author.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err = svc.db.
		NewUpdate().
		Model(author).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return author, nil
}

// DeleteAuthor removes the author and returns it as it was before deletion.
// Authors that still own books are kept and a conflict is returned instead.
func (svc *Service) DeleteAuthor(ctx context.Context, id int) (*models.Author, error) {
	author, err := svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &id})
	if err != nil {
		return nil, err
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("author_id = ?", id).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if count > 0 {
			return errcodes.Conflict("Author still has books and can't be deleted.")
		}

		_, err = tx.NewDelete().
			Model((*models.Author)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return author, nil
}
