package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	comments []Comment
}

// Comment is immutable once created.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPost(authorID uuid.UUID, content string, now time.Time) *Post {
	return &Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
	}
}

func NewComment(authorID uuid.UUID, content string, now time.Time) Comment {
	return Comment{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
	}
}

// AddComment appends c. The author is not checked.
func (p *Post) AddComment(c Comment) {
	p.comments = append(p.comments, c)
}

// Comments returns comments in insertion order.
func (p *Post) Comments() []Comment {
	if len(p.comments) == 0 {
		return []Comment{}
	}
	return slices.Clone(p.comments)
}

// FeedEntry is a post with usernames resolved, ready to render.
type FeedEntry struct {
	Post           *Post
	AuthorUsername string
	Comments       []FeedComment
}

type FeedComment struct {
	Comment
	AuthorUsername string
}
