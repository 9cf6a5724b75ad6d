package models

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequest is one entry in a recipient's pending queue.
type FriendRequest struct {
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type FriendRequestWithUser struct {
	FriendRequest
	SenderUsername string `json:"sender_username"`
}
