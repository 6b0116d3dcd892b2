package books

type ListBooksQuery struct {
	AuthorID *int `query:"authorId" json:"authorId,omitempty" validate:"omitnil,min=1"`
	Limit    *int `query:"limit" json:"limit,omitempty" validate:"omitnil,min=1"`
	Offset   *int `query:"offset" json:"offset,omitempty" validate:"omitnil,min=0"`
}

// CreateBookPayload uses pointers for the numeric fields so that a missing
// value can be told apart from zero.
type CreateBookPayload struct {
	Title         string `json:"title" validate:"required,notblank,max=255"`
	AuthorID      *int   `json:"authorId" validate:"required"`
	Description   string `json:"description" validate:"required,notblank"`
	PublishedYear *int   `json:"publishedYear" validate:"required"`
	StockCount    *int   `json:"stockCount" validate:"required"`
}

type UpdateBookPayload struct {
	Title         *string `json:"title,omitempty" validate:"omitnil,notblank,max=255"`
	AuthorID      *int    `json:"authorId,omitempty"`
	Description   *string `json:"description,omitempty" validate:"omitnil,notblank"`
	PublishedYear *int    `json:"publishedYear,omitempty"`
	StockCount    *int    `json:"stockCount,omitempty"`
}
