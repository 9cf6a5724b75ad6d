package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HammerMeetNail/minisocial/internal/services"
	tu "github.com/HammerMeetNail/minisocial/internal/testutil"
)

func TestCreatePost_StampsClock(t *testing.T) {
	f := tu.NewFixture(t)
	a := tu.MustRegister(t, f.Directory, "a", "pw")

	p1, err := f.Directory.CreatePost(a.ID, "first")
	require.NoError(t, err)
	p2, err := f.Directory.CreatePost(a.ID, "second")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 1, 0, time.UTC), p1.CreatedAt, "registration consumed the first tick")
	assert.True(t, p2.CreatedAt.After(p1.CreatedAt))
	assert.Equal(t, a.ID, p1.AuthorID)

	posts := f.Directory.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, p1.ID, posts[0].ID)
}

func TestAddCommentToPost(t *testing.T) {
	d := tu.NewDirectory(t)
	a := tu.MustRegister(t, d, "a", "pw")
	b := tu.MustRegister(t, d, "b", "pw")
	post, err := d.CreatePost(a.ID, "body")
	require.NoError(t, err)

	c1, err := d.AddCommentToPost(b.ID, post.ID, "one")
	require.NoError(t, err)
	c2, err := d.AddCommentToPost(a.ID, post.ID, "two")
	require.NoError(t, err)

	got, err := d.Post(post.ID)
	require.NoError(t, err)
	comments := got.Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, c1.ID, comments[0].ID)
	assert.Equal(t, c2.ID, comments[1].ID)
	assert.Equal(t, b.ID, comments[0].AuthorID)
	assert.False(t, comments[1].CreatedAt.Before(comments[0].CreatedAt))
}

func TestAddCommentToPost_UnknownPost(t *testing.T) {
	d := tu.NewDirectory(t)
	a := tu.MustRegister(t, d, "a", "pw")

	_, err := d.AddCommentToPost(a.ID, uuid.New(), "lost")
	assert.ErrorIs(t, err, services.ErrPostNotFound)

	_, err = d.Post(uuid.New())
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}
