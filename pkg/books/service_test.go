package books

import (
	"context"
	"testing"

	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/shishobooks/bookshelf/pkg/authors"
	"github.com/shishobooks/bookshelf/pkg/config"
	"github.com/shishobooks/bookshelf/pkg/database"
	"github.com/shishobooks/bookshelf/pkg/errcodes"
	"github.com/shishobooks/bookshelf/pkg/migrations"
	"github.com/shishobooks/bookshelf/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func setupTestAuthor(t *testing.T, db *bun.DB, name string) *models.Author {
	t.Helper()
	author := &models.Author{Name: name, Bio: "Bio"}
	require.NoError(t, authors.NewService(db).CreateAuthor(context.Background(), author))
	return author
}

func newBook(author *models.Author, title string) *models.Book {
	return &models.Book{
		Title:         title,
		Description:   "Description",
		PublishedYear: 2023,
		StockCount:    20,
		Author:        author,
	}
}

func countBooks(t *testing.T, db *bun.DB) int {
	t.Helper()
	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestCreateBook_AttachesResolvedAuthor(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := setupTestAuthor(t, db, "Arooj")

	book := newBook(author, "Book 1")
	require.NoError(t, svc.CreateBook(ctx, book))
	assert.NotZero(t, book.ID)
	assert.Equal(t, author.ID, book.AuthorID)
	assert.Equal(t, "Book 1", book.Title)
	assert.Equal(t, 2023, book.PublishedYear)
	assert.Equal(t, 20, book.StockCount)

	require.NotNil(t, book.Author)
	require.Len(t, book.Author.Books, 1)
	assert.Equal(t, book.ID, book.Author.Books[0].ID)

	reloaded, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	require.NotNil(t, reloaded.Author)
	assert.Equal(t, author.ID, reloaded.Author.ID)
	assert.Equal(t, "Arooj", reloaded.Author.Name)
	require.Len(t, reloaded.Author.Books, 1)
}

func TestCreateBook_WithoutAuthorStoresNothing(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)

	err := svc.CreateBook(context.Background(), newBook(nil, "Orphan"))
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
	assert.Zero(t, countBooks(t, db))
}

func TestListBooks(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	first := setupTestAuthor(t, db, "First")
	second := setupTestAuthor(t, db, "Second")

	books, err := svc.ListBooks(ctx, ListBooksOptions{})
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	for _, b := range []*models.Book{newBook(first, "A"), newBook(second, "B"), newBook(first, "C")} {
		require.NoError(t, svc.CreateBook(ctx, b))
	}

	books, err = svc.ListBooks(ctx, ListBooksOptions{})
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "A", books[0].Title)
	assert.Equal(t, "B", books[1].Title)
	assert.Equal(t, "C", books[2].Title)
	require.NotNil(t, books[1].Author)
	assert.Equal(t, "Second", books[1].Author.Name)

	books, err = svc.ListBooks(ctx, ListBooksOptions{AuthorID: &first.ID})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "A", books[0].Title)
	assert.Equal(t, "C", books[1].Title)

	books, err = svc.ListBooks(ctx, ListBooksOptions{Limit: pointerutil.Int(1), Offset: pointerutil.Int(1)})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "B", books[0].Title)
}

func TestRetrieveBook_NotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)

	book, err := svc.RetrieveBook(context.Background(), RetrieveBookOptions{ID: pointerutil.Int(999)})
	assert.Nil(t, book)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestUpdateBook_OnlyChangesSuppliedFields(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := setupTestAuthor(t, db, "Arooj")

	book := newBook(author, "Old Title")
	require.NoError(t, svc.CreateBook(ctx, book))

	updated, err := svc.UpdateBook(ctx, book.ID, UpdateBookOptions{
		Title:      pointerutil.String("New Title"),
		StockCount: pointerutil.Int(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, 0, updated.StockCount)
	assert.Equal(t, "Description", updated.Description)
	assert.Equal(t, 2023, updated.PublishedYear)

	reloaded, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, "New Title", reloaded.Title)
	assert.Equal(t, 0, reloaded.StockCount)
	assert.Equal(t, author.ID, reloaded.AuthorID)
}

func TestUpdateBook_ReassignsAuthor(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	first := setupTestAuthor(t, db, "First")
	second := setupTestAuthor(t, db, "Second")

	book := newBook(first, "Moving")
	require.NoError(t, svc.CreateBook(ctx, book))

	updated, err := svc.UpdateBook(ctx, book.ID, UpdateBookOptions{Author: second})
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.AuthorID)
	assert.Equal(t, "Second", updated.Author.Name)
	require.Len(t, updated.Author.Books, 1)
	assert.Equal(t, book.ID, updated.Author.Books[0].ID)

	previous, err := authors.NewService(db).RetrieveAuthor(ctx, authors.RetrieveAuthorOptions{ID: &first.ID})
	require.NoError(t, err)
	assert.Empty(t, previous.Books)

	reloaded, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, reloaded.Author.ID)
}

func TestUpdateBook_NotFoundPerformsNoWrite(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)

	updated, err := svc.UpdateBook(context.Background(), 999, UpdateBookOptions{Title: pointerutil.String("x")})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
	assert.Zero(t, countBooks(t, db))
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := setupTestAuthor(t, db, "Arooj")

	book := newBook(author, "Temporary")
	require.NoError(t, svc.CreateBook(ctx, book))

	deleted, err := svc.DeleteBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, deleted.ID)
	assert.Equal(t, "Temporary", deleted.Title)
	assert.Zero(t, countBooks(t, db))

	deleted, err = svc.DeleteBook(ctx, book.ID)
	assert.Nil(t, deleted)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestBooksAppearUnderTheirAuthor(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	authorService := authors.NewService(db)
	ctx := context.Background()
	author := setupTestAuthor(t, db, "Arooj")

	book := newBook(author, "Linked")
	require.NoError(t, svc.CreateBook(ctx, book))

	reloaded, err := authorService.RetrieveAuthor(ctx, authors.RetrieveAuthorOptions{ID: &author.ID})
	require.NoError(t, err)
	require.Len(t, reloaded.Books, 1)
	assert.Equal(t, book.ID, reloaded.Books[0].ID)

	_, err = authorService.DeleteAuthor(ctx, author.ID)
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "conflict", codeErr.Code)
	assert.Equal(t, 1, countBooks(t, db))
}
