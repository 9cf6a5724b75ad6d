package services

import (
	"github.com/google/uuid"

	"github.com/HammerMeetNail/minisocial/internal/metrics"
)

// SendDirectMessage appends text to senderID's outbound log for recipientID.
// The recipient is not required to be registered.
func (d *Directory) SendDirectMessage(senderID, recipientID uuid.UUID, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sender, ok := d.accounts[senderID]
	if !ok {
		d.observe(opSendMessage, metrics.OutcomeRejected)
		return ErrUserNotFound
	}

	sender.SendDirectMessage(recipientID, text)

	d.observe(opSendMessage, metrics.OutcomeOK)
	d.logger.Debug("Direct message sent", map[string]interface{}{
		"sender_id":    senderID.String(),
		"recipient_id": recipientID.String(),
	})
	return nil
}

// DirectMessagesFrom returns the log asID keeps for peerID. Logs are stored on
// the sending side, so this reads asID's outbound messages to peerID. Unknown
// accounts and missing logs both yield an empty slice.
func (d *Directory) DirectMessagesFrom(asID, peerID uuid.UUID) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[asID]
	if !ok {
		return []string{}
	}
	return account.DirectMessagesFrom(peerID)
}
