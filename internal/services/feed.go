package services

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/minisocial/internal/metrics"
	"github.com/HammerMeetNail/minisocial/internal/models"
)

// CanView reports whether viewerID may see post: either the author's privacy
// allow-list names the viewer, or the viewer is on the author's friend list.
func (d *Directory) CanView(viewerID uuid.UUID, post *models.Post) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.canViewLocked(viewerID, post)
}

func (d *Directory) canViewLocked(viewerID uuid.UUID, post *models.Post) bool {
	if post == nil {
		return false
	}
	if d.privacy[post.AuthorID].IsPostVisible(viewerID) {
		return true
	}
	author, ok := d.accounts[post.AuthorID]
	return ok && author.HasFriend(viewerID)
}

// NewsFeed returns the posts visible to viewerID in publication order.
func (d *Directory) NewsFeed(viewerID uuid.UUID) []*models.Post {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.newsFeedLocked(viewerID)
}

func (d *Directory) newsFeedLocked(viewerID uuid.UUID) []*models.Post {
	feed := []*models.Post{}
	for _, post := range d.posts {
		if d.canViewLocked(viewerID, post) {
			feed = append(feed, post)
		}
	}
	return feed
}

// NewsFeedEntries is NewsFeed with author and commenter usernames resolved.
func (d *Directory) NewsFeedEntries(viewerID uuid.UUID) []models.FeedEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	posts := d.newsFeedLocked(viewerID)
	entries := make([]models.FeedEntry, 0, len(posts))
	for _, post := range posts {
		comments := post.Comments()
		entry := models.FeedEntry{
			Post:           post,
			AuthorUsername: d.usernameLocked(post.AuthorID),
			Comments:       make([]models.FeedComment, 0, len(comments)),
		}
		for _, c := range comments {
			entry.Comments = append(entry.Comments, models.FeedComment{
				Comment:        c,
				AuthorUsername: d.usernameLocked(c.AuthorID),
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

// RenderNewsFeed writes viewerID's feed to w, one line per post followed by
// an indented line per comment.
func (d *Directory) RenderNewsFeed(w io.Writer, viewerID uuid.UUID) error {
	_, err := d.render(w, viewerID)
	return err
}

// DisplayNewsFeed renders the feed and returns the posts it contained.
func (d *Directory) DisplayNewsFeed(w io.Writer, viewerID uuid.UUID) ([]*models.Post, error) {
	entries, err := d.render(w, viewerID)
	posts := make([]*models.Post, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, e.Post)
	}
	return posts, err
}

func (d *Directory) render(w io.Writer, viewerID uuid.UUID) ([]models.FeedEntry, error) {
	entries := d.NewsFeedEntries(viewerID)
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s (%s): %s\n",
			e.AuthorUsername, e.Post.CreatedAt.Format(d.timeFormat), e.Post.Content); err != nil {
			d.observe(opRenderNewsFeed, metrics.OutcomeRejected)
			return entries, fmt.Errorf("rendering post %s: %w", e.Post.ID, err)
		}
		for _, c := range e.Comments {
			if _, err := fmt.Fprintf(w, "  - %s (%s): %s\n",
				c.AuthorUsername, c.CreatedAt.Format(d.timeFormat), c.Content); err != nil {
				d.observe(opRenderNewsFeed, metrics.OutcomeRejected)
				return entries, fmt.Errorf("rendering comment %s: %w", c.ID, err)
			}
		}
	}
	d.observe(opRenderNewsFeed, metrics.OutcomeOK)
	return entries, nil
}
