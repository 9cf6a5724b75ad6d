package services_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HammerMeetNail/minisocial/internal/services"
	tu "github.com/HammerMeetNail/minisocial/internal/testutil"
)

func TestDirectMessages_RoundTripFromSenderSide(t *testing.T) {
	d := tu.NewDirectory(t)
	a := tu.MustRegister(t, d, "a", "pw")
	b := tu.MustRegister(t, d, "b", "pw")

	assert.Empty(t, d.DirectMessagesFrom(a.ID, b.ID))
	assert.NotNil(t, d.DirectMessagesFrom(a.ID, b.ID))

	require.NoError(t, d.SendDirectMessage(a.ID, b.ID, "hey"))
	require.NoError(t, d.SendDirectMessage(a.ID, b.ID, "you there?"))

	assert.Equal(t, []string{"hey", "you there?"}, d.DirectMessagesFrom(a.ID, b.ID))
	// Logs live on the sender; b has sent nothing to a.
	assert.Empty(t, d.DirectMessagesFrom(b.ID, a.ID))
}

func TestDirectMessages_UnknownAccounts(t *testing.T) {
	d := tu.NewDirectory(t)
	a := tu.MustRegister(t, d, "a", "pw")

	assert.ErrorIs(t, d.SendDirectMessage(uuid.New(), a.ID, "x"), services.ErrUserNotFound)
	assert.Empty(t, d.DirectMessagesFrom(uuid.New(), a.ID))
}

func TestDirectory_ConcurrentCallers(t *testing.T) {
	d := tu.NewDirectory(t)
	a := tu.MustRegister(t, d, "a", "pw")
	b := tu.MustRegister(t, d, "b", "pw")
	tu.MustBefriend(t, d, a, b)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = d.CreatePost(a.ID, "post")
			_ = d.SendDirectMessage(a.ID, b.ID, "msg")
		}()
		go func() {
			defer wg.Done()
			_ = d.NewsFeed(b.ID)
			_ = d.DirectMessagesFrom(a.ID, b.ID)
		}()
	}
	wg.Wait()

	assert.Len(t, d.NewsFeed(b.ID), 20)
	assert.Len(t, d.DirectMessagesFrom(a.ID, b.ID), 20)
}

func TestDirectory_ConcurrentFriendsAndComments(t *testing.T) {
	d := tu.NewDirectory(t)
	a := tu.MustRegister(t, d, "a", "pw")
	b := tu.MustRegister(t, d, "b", "pw")
	tu.MustBefriend(t, d, a, b)
	post, err := d.CreatePost(a.ID, "hello")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = d.AddCommentToPost(b.ID, post.ID, "hi")
			_ = d.RemoveFriend(a.ID, b.ID)
			_ = d.SendFriendRequest(b.ID, a.ID)
			_ = d.AcceptFriendRequest(a.ID, b.ID)
		}()
		go func() {
			defer wg.Done()
			_ = d.NewsFeedEntries(a.ID)
			_ = d.Friends(b.ID)
			_ = d.IsFriend(a.ID, b.ID)
			_ = d.PendingRequests(a.ID)
		}()
	}
	wg.Wait()

	entries := d.NewsFeedEntries(b.ID)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Comments, 20)
	assert.Equal(t, d.IsFriend(a.ID, b.ID), d.IsFriend(b.ID, a.ID))
}
