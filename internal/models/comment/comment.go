package comment

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID            uuid.UUID  `json:"id"`
	Content       string     `json:"content"`
	TaskID        uuid.UUID  `json:"task"`
	AuthorID      uuid.UUID  `json:"author"`
	ParentComment *uuid.UUID `json:"parent_comment,omitempty"`
	IsEdited      bool       `json:"is_edited"`
	EditedAt      *time.Time `json:"edited_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	out := *c
	if c.ParentComment != nil {
		id := *c.ParentComment
		out.ParentComment = &id
	}
	if c.EditedAt != nil {
		t := *c.EditedAt
		out.EditedAt = &t
	}
	if c.UpdatedAt != nil {
		t := *c.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}
