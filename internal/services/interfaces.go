package services

import (
	"io"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/minisocial/internal/models"
)

// DirectoryInterface defines the contract for callers driving the social network.
type DirectoryInterface interface {
	RegisterUser(username, email, secret string) (*models.Account, error)
	Login(username, secret string) (*models.Account, error)
	FindByUsername(username string) (*models.Account, error)

	SendFriendRequest(senderID, recipientID uuid.UUID) error
	AcceptFriendRequest(userID, senderID uuid.UUID) error
	RejectFriendRequest(userID, senderID uuid.UUID) error
	PendingRequests(userID uuid.UUID) []models.FriendRequestWithUser
	Friends(userID uuid.UUID) []*models.Account
	IsFriend(userID, otherUserID uuid.UUID) bool
	RemoveFriend(userID, friendID uuid.UUID) error

	CreatePost(authorID uuid.UUID, content string) (*models.Post, error)
	AddCommentToPost(userID, postID uuid.UUID, content string) (*models.Comment, error)
	UpdatePrivacySettings(userID uuid.UUID, settings *models.PrivacySettings) error

	NewsFeed(viewerID uuid.UUID) []*models.Post
	RenderNewsFeed(w io.Writer, viewerID uuid.UUID) error

	SendDirectMessage(senderID, recipientID uuid.UUID, text string) error
	DirectMessagesFrom(asID, peerID uuid.UUID) []string
}

var _ DirectoryInterface = (*Directory)(nil)
