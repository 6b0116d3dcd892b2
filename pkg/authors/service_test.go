package authors

import (
	"context"
	"testing"
	"time"

	"github.com/robinjoseph08/golib/pointerutil"
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

func insertBook(ctx context.Context, t *testing.T, db *bun.DB, authorID int, title string) *models.Book {
	t.Helper()
	now := time.Now()
	book := &models.Book{
		CreatedAt:     now,
		UpdatedAt:     now,
		Title:         title,
		Description:   "d",
		PublishedYear: 2023,
		StockCount:    20,
		AuthorID:      authorID,
	}
	_, err := db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)
	return book
}

func TestCreateAuthor_ThenListIncludesItWithNoBooks(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{Name: "Arooj", Bio: "Bio 1"}
	err := svc.CreateAuthor(ctx, author)
	require.NoError(t, err)
	assert.NotZero(t, author.ID)
	assert.Equal(t, "Arooj", author.Name)
	assert.Equal(t, "Bio 1", author.Bio)
	assert.False(t, author.CreatedAt.IsZero())

	authors, err := svc.ListAuthors(ctx, ListAuthorsOptions{})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, author.ID, authors[0].ID)
	assert.Equal(t, "Arooj", authors[0].Name)
	assert.NotNil(t, authors[0].Books)
	assert.Empty(t, authors[0].Books)
}

func TestCreateAuthor_GeneratesDistinctIDs(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seen := map[int]bool{}
	for i := 0; i < 5; i++ {
		author := &models.Author{Name: "Author", Bio: "Bio"}
		require.NoError(t, svc.CreateAuthor(ctx, author))
		assert.False(t, seen[author.ID], "id %d was generated twice", author.ID)
		seen[author.ID] = true
	}
}

func TestListAuthors_EagerlyLoadsBooks(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first := &models.Author{Name: "First", Bio: "Bio"}
	require.NoError(t, svc.CreateAuthor(ctx, first))
	second := &models.Author{Name: "Second", Bio: "Bio"}
	require.NoError(t, svc.CreateAuthor(ctx, second))

	b1 := insertBook(ctx, t, db, first.ID, "One")
	b2 := insertBook(ctx, t, db, first.ID, "Two")

	authors, err := svc.ListAuthors(ctx, ListAuthorsOptions{})
	require.NoError(t, err)
	require.Len(t, authors, 2)

	assert.Equal(t, first.ID, authors[0].ID)
	require.Len(t, authors[0].Books, 2)
	assert.Equal(t, b1.ID, authors[0].Books[0].ID)
	assert.Equal(t, b2.ID, authors[0].Books[1].ID)
	assert.Empty(t, authors[1].Books)
}

func TestListAuthors_SearchAndPaging(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for _, name := range []string{"Ursula Le Guin", "Ted Chiang", "Ursula Vernon"} {
		require.NoError(t, svc.CreateAuthor(ctx, &models.Author{Name: name, Bio: "Bio"}))
	}

	authors, err := svc.ListAuthors(ctx, ListAuthorsOptions{Search: pointerutil.String("ursula")})
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Ursula Le Guin", authors[0].Name)
	assert.Equal(t, "Ursula Vernon", authors[1].Name)

	authors, err = svc.ListAuthors(ctx, ListAuthorsOptions{Limit: pointerutil.Int(1), Offset: pointerutil.Int(1)})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Ted Chiang", authors[0].Name)
}

func TestRetrieveAuthor_NotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)

	author, err := svc.RetrieveAuthor(context.Background(), RetrieveAuthorOptions{ID: pointerutil.Int(999)})
	assert.Nil(t, author)
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestUpdateAuthor_OnlyChangesSuppliedFields(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{Name: "Old Name", Bio: "Old Bio"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	updated, err := svc.UpdateAuthor(ctx, author.ID, UpdateAuthorOptions{Name: pointerutil.String("New Name")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "Old Bio", updated.Bio)

	reloaded, err := svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &author.ID})
	require.NoError(t, err)
	assert.Equal(t, "New Name", reloaded.Name)
	assert.Equal(t, "Old Bio", reloaded.Bio)
}

func TestUpdateAuthor_NotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)

	updated, err := svc.UpdateAuthor(context.Background(), 999, UpdateAuthorOptions{Name: pointerutil.String("x")})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestDeleteAuthor_ReturnsEntityAndRemovesIt(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{Name: "Gone", Bio: "Soon"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	deleted, err := svc.DeleteAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, deleted.ID)
	assert.Equal(t, "Gone", deleted.Name)

	_, err = svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &author.ID})
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestDeleteAuthor_NotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)

	deleted, err := svc.DeleteAuthor(context.Background(), 999)
	assert.Nil(t, deleted)
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestDeleteAuthor_WithBooksIsRejected(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{Name: "Prolific", Bio: "Bio"}
	require.NoError(t, svc.CreateAuthor(ctx, author))
	insertBook(ctx, t, db, author.ID, "Kept")

	deleted, err := svc.DeleteAuthor(ctx, author.ID)
	assert.Nil(t, deleted)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "conflict", codeErr.Code)

	reloaded, err := svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &author.ID})
	require.NoError(t, err)
	assert.Len(t, reloaded.Books, 1)
}
