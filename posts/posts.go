package posts

import (
	"time"

	"github.com/uptrace/bun"
)

type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Title     string    `bun:"title,notnull" json:"title,omitempty"`
	Content   string    `bun:"content,notnull" json:"content,omitempty"`
	Published bool      `bun:"published,notnull,default:false" json:"published"`
	AuthorID  int64     `bun:"author_id,notnull" json:"author_id,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
}
