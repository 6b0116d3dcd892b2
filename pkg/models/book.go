package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:book,alias:b"`

	ID            int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt     time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt     time.Time `bun:",notnull" json:"updatedAt"`
	Title         string    `bun:",notnull" json:"title"`
	Description   string    `bun:",notnull" json:"description"`
	PublishedYear int       `bun:",notnull" json:"publishedYear"`
	StockCount    int       `bun:",notnull" json:"stockCount"`
	AuthorID      int       `bun:",notnull" json:"authorId"`
	Author        *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}
