package models

import (
	"crypto/sha256"
	"encoding/base64"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Account is a registered identity. Friends and message peers are referenced
// by ID; the Directory owns the accounts themselves.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	friends  []uuid.UUID
	messages map[uuid.UUID][]string
}

type CreateAccountParams struct {
	Username     string
	Email        string
	PasswordHash string
}

// NewAccount builds an account with a fresh ID and empty relations.
func NewAccount(params CreateAccountParams, now time.Time) *Account {
	return &Account{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		messages:     make(map[uuid.UUID][]string),
	}
}

// SecretDigest is the bcrypt input for secret: the base64 SHA-256 of it, which
// stays under bcrypt's 72-byte limit for secrets of any length.
func SecretDigest(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Authenticate reports whether secret matches the stored bcrypt hash.
func (a *Account) Authenticate(secret string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), SecretDigest(secret)) == nil
}

// AddFriend records id as a friend. It does not reciprocate.
func (a *Account) AddFriend(id uuid.UUID) {
	if id == a.ID || a.HasFriend(id) {
		return
	}
	a.friends = append(a.friends, id)
}

func (a *Account) RemoveFriend(id uuid.UUID) {
	if i := slices.Index(a.friends, id); i >= 0 {
		a.friends = slices.Delete(a.friends, i, i+1)
	}
}

func (a *Account) HasFriend(id uuid.UUID) bool {
	return slices.Contains(a.friends, id)
}

// Friends returns friend IDs in the order they were added.
func (a *Account) Friends() []uuid.UUID {
	if len(a.friends) == 0 {
		return []uuid.UUID{}
	}
	return slices.Clone(a.friends)
}

// SendDirectMessage appends text to the outbound log for recipientID.
func (a *Account) SendDirectMessage(recipientID uuid.UUID, text string) {
	if a.messages == nil {
		a.messages = make(map[uuid.UUID][]string)
	}
	a.messages[recipientID] = append(a.messages[recipientID], text)
}

// DirectMessagesFrom returns the log kept for peerID, or an empty slice.
func (a *Account) DirectMessagesFrom(peerID uuid.UUID) []string {
	msgs, ok := a.messages[peerID]
	if !ok || len(msgs) == 0 {
		return []string{}
	}
	return slices.Clone(msgs)
}
