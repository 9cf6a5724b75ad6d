package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAccount(t *testing.T, username, secret string) *Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword(SecretDigest(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAccount(CreateAccountParams{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}, time.Now())
}

func TestAccount_Authenticate(t *testing.T) {
	a := newTestAccount(t, "alice", "secret1")

	assert.True(t, a.Authenticate("secret1"))
	assert.False(t, a.Authenticate("secret2"))
	assert.False(t, a.Authenticate(""))
}

func TestAccount_Authenticate_LongSecret(t *testing.T) {
	long := strings.Repeat("x", 100)
	a := newTestAccount(t, "alice", long)

	assert.True(t, a.Authenticate(long))
	// Secrets sharing a 72-byte prefix must still be told apart.
	assert.False(t, a.Authenticate(strings.Repeat("x", 99)+"y"))
	assert.Len(t, SecretDigest(long), 44)
}

func TestAccount_Authenticate_NoHash(t *testing.T) {
	a := NewAccount(CreateAccountParams{Username: "ghost"}, time.Now())
	assert.False(t, a.Authenticate(""))
}

func TestAccount_AddFriend_Idempotent(t *testing.T) {
	a := newTestAccount(t, "alice", "x")
	friend := uuid.New()

	a.AddFriend(friend)
	a.AddFriend(friend)

	assert.Equal(t, []uuid.UUID{friend}, a.Friends())
}

func TestAccount_AddFriend_IgnoresSelf(t *testing.T) {
	a := newTestAccount(t, "alice", "x")
	a.AddFriend(a.ID)
	assert.Empty(t, a.Friends())
	assert.False(t, a.HasFriend(a.ID))
}

func TestAccount_Friends_InsertionOrderAndCopy(t *testing.T) {
	a := newTestAccount(t, "alice", "x")
	first, second := uuid.New(), uuid.New()
	a.AddFriend(first)
	a.AddFriend(second)

	got := a.Friends()
	require.Equal(t, []uuid.UUID{first, second}, got)

	got[0] = uuid.Nil
	assert.Equal(t, first, a.Friends()[0], "mutating the returned slice must not touch the account")
}

func TestAccount_RemoveFriend(t *testing.T) {
	a := newTestAccount(t, "alice", "x")
	friend := uuid.New()
	a.AddFriend(friend)

	a.RemoveFriend(friend)
	a.RemoveFriend(friend)

	assert.False(t, a.HasFriend(friend))
	assert.Empty(t, a.Friends())
}

func TestAccount_DirectMessages(t *testing.T) {
	a := newTestAccount(t, "alice", "x")
	peer := uuid.New()
	other := uuid.New()

	assert.NotNil(t, a.DirectMessagesFrom(peer))
	assert.Empty(t, a.DirectMessagesFrom(peer))

	a.SendDirectMessage(peer, "hello")
	a.SendDirectMessage(peer, "again")
	a.SendDirectMessage(other, "hi other")

	assert.Equal(t, []string{"hello", "again"}, a.DirectMessagesFrom(peer))
	assert.Equal(t, []string{"hi other"}, a.DirectMessagesFrom(other))
}

func TestAccount_SendDirectMessage_ZeroValue(t *testing.T) {
	var a Account
	peer := uuid.New()
	a.SendDirectMessage(peer, "lazy")
	assert.Equal(t, []string{"lazy"}, a.DirectMessagesFrom(peer))
}
