package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:author,alias:a"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:",notnull" json:"updatedAt"`
	Name      string    `bun:",notnull" json:"name"`
	Bio       string    `bun:",notnull" json:"bio"`
	Books     []*Book   `bun:"rel:has-many,join:id=author_id" json:"books"`
}
