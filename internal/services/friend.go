package services

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/minisocial/internal/metrics"
	"github.com/HammerMeetNail/minisocial/internal/models"
)

var (
	ErrRequestNotFound = errors.New("friend request not found")
	ErrRequestExists   = errors.New("friend request already pending")
	ErrNotFriend       = errors.New("you are not friends with this user")
)

// SendFriendRequest queues senderID on recipientID's pending list. The same
// sender may be queued more than once unless WithDedupeRequests is set.
func (d *Directory) SendFriendRequest(senderID, recipientID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.accounts[senderID]; !ok {
		d.observe(opSendRequest, metrics.OutcomeRejected)
		return ErrUserNotFound
	}
	queue, ok := d.requests[recipientID]
	if !ok {
		d.observe(opSendRequest, metrics.OutcomeRejected)
		return ErrUserNotFound
	}

	if d.dedupeRequests && indexOfSender(queue, senderID) >= 0 {
		d.observe(opSendRequest, metrics.OutcomeRejected)
		return ErrRequestExists
	}

	d.requests[recipientID] = append(queue, models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
		CreatedAt:   d.now(),
	})

	d.observe(opSendRequest, metrics.OutcomeOK)
	d.logger.Debug("Friend request sent", map[string]interface{}{
		"sender_id":    senderID.String(),
		"recipient_id": recipientID.String(),
	})
	return nil
}

// AcceptFriendRequest removes the first request from senderID in userID's queue
// and makes the two accounts friends in both directions. Nothing changes when
// no such request is pending.
func (d *Directory) AcceptFriendRequest(userID, senderID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.dequeueRequestLocked(userID, senderID) {
		d.observe(opAcceptRequest, metrics.OutcomeRejected)
		return ErrRequestNotFound
	}

	user := d.accounts[userID]
	sender, ok := d.accounts[senderID]
	if user != nil && ok {
		user.AddFriend(senderID)
		sender.AddFriend(userID)
	}

	d.observe(opAcceptRequest, metrics.OutcomeOK)
	d.logger.Debug("Friend request accepted", map[string]interface{}{
		"user_id":   userID.String(),
		"sender_id": senderID.String(),
	})
	return nil
}

// RejectFriendRequest drops the first request from senderID without creating a friendship.
func (d *Directory) RejectFriendRequest(userID, senderID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.dequeueRequestLocked(userID, senderID) {
		d.observe(opRejectRequest, metrics.OutcomeRejected)
		return ErrRequestNotFound
	}

	d.observe(opRejectRequest, metrics.OutcomeOK)
	d.logger.Debug("Friend request rejected", map[string]interface{}{
		"user_id":   userID.String(),
		"sender_id": senderID.String(),
	})
	return nil
}

// PendingRequests returns userID's queue in arrival order.
func (d *Directory) PendingRequests(userID uuid.UUID) []models.FriendRequestWithUser {
	d.mu.RLock()
	defer d.mu.RUnlock()

	queue := d.requests[userID]
	out := make([]models.FriendRequestWithUser, 0, len(queue))
	for _, r := range queue {
		out = append(out, models.FriendRequestWithUser{
			FriendRequest:  r,
			SenderUsername: d.usernameLocked(r.SenderID),
		})
	}
	return out
}

// Friends resolves userID's friend list in the order friendships were made.
func (d *Directory) Friends(userID uuid.UUID) []*models.Account {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[userID]
	if !ok {
		return []*models.Account{}
	}

	ids := account.Friends()
	friends := make([]*models.Account, 0, len(ids))
	for _, id := range ids {
		if f, ok := d.accounts[id]; ok {
			friends = append(friends, f)
		}
	}
	return friends
}

// IsFriend reports whether otherUserID is on userID's friend list.
func (d *Directory) IsFriend(userID, otherUserID uuid.UUID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[userID]
	return ok && account.HasFriend(otherUserID)
}

// RemoveFriend ends a friendship in both directions.
func (d *Directory) RemoveFriend(userID, friendID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.accounts[userID]
	if !ok {
		d.observe(opRemoveFriend, metrics.OutcomeRejected)
		return ErrUserNotFound
	}
	if !user.HasFriend(friendID) {
		d.observe(opRemoveFriend, metrics.OutcomeRejected)
		return ErrNotFriend
	}

	user.RemoveFriend(friendID)
	if friend, ok := d.accounts[friendID]; ok {
		friend.RemoveFriend(userID)
	}

	d.observe(opRemoveFriend, metrics.OutcomeOK)
	d.logger.Debug("Friend removed", map[string]interface{}{
		"user_id":   userID.String(),
		"friend_id": friendID.String(),
	})
	return nil
}

// dequeueRequestLocked removes the first request from senderID in userID's
// queue and reports whether one was found. Callers hold d.mu.
func (d *Directory) dequeueRequestLocked(userID, senderID uuid.UUID) bool {
	queue, ok := d.requests[userID]
	if !ok {
		return false
	}
	i := indexOfSender(queue, senderID)
	if i < 0 {
		return false
	}
	d.requests[userID] = slices.Delete(queue, i, i+1)
	return true
}

func indexOfSender(queue []models.FriendRequest, senderID uuid.UUID) int {
	return slices.IndexFunc(queue, func(r models.FriendRequest) bool {
		return r.SenderID == senderID
	})
}
