package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shishobooks/bookshelf/pkg/models"
	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().
			Model((*models.Author)(nil)).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		// No ON DELETE action: an author can't be removed while books point at it.
		_, err = db.NewCreateTable().
			Model((*models.Book)(nil)).
			ForeignKey(`("author_id") REFERENCES "author" ("id")`).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.NewCreateIndex().
			Model((*models.Book)(nil)).
			Index("ix_book_author_id").
			Column("author_id").
			Exec(ctx)
		return errors.WithStack(err)
	}

	down := func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().
			Model((*models.Book)(nil)).
			IfExists().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.NewDropTable().
			Model((*models.Author)(nil)).
			IfExists().
			Exec(ctx)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
