package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/minisocial/internal/metrics"
	"github.com/HammerMeetNail/minisocial/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

// CreatePost stamps the current time and appends the post to the global list.
// The author is not required to be registered.
func (d *Directory) CreatePost(authorID uuid.UUID, content string) (*models.Post, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	post := models.NewPost(authorID, content, d.now())
	d.posts = append(d.posts, post)
	d.postsByID[post.ID] = post

	d.observe(opCreatePost, metrics.OutcomeOK)
	d.metrics.SetPosts(len(d.posts))
	d.logger.Debug("Post created", map[string]interface{}{
		"post_id":   post.ID.String(),
		"author_id": authorID.String(),
	})
	return post, nil
}

// AddCommentToPost stamps the current time and appends a comment by userID.
func (d *Directory) AddCommentToPost(userID, postID uuid.UUID, content string) (*models.Comment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	post, ok := d.postsByID[postID]
	if !ok {
		d.observe(opAddComment, metrics.OutcomeRejected)
		return nil, ErrPostNotFound
	}

	comment := models.NewComment(userID, content, d.now())
	post.AddComment(comment)

	d.observe(opAddComment, metrics.OutcomeOK)
	d.logger.Debug("Comment added", map[string]interface{}{
		"post_id":    postID.String(),
		"comment_id": comment.ID.String(),
		"author_id":  userID.String(),
	})
	return &comment, nil
}

func (d *Directory) Post(postID uuid.UUID) (*models.Post, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	post, ok := d.postsByID[postID]
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Posts returns every post in publication order.
func (d *Directory) Posts() []*models.Post {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*models.Post, len(d.posts))
	copy(out, d.posts)
	return out
}
