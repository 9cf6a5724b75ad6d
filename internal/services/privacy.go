package services

import (
	"github.com/google/uuid"

	"github.com/HammerMeetNail/minisocial/internal/metrics"
	"github.com/HammerMeetNail/minisocial/internal/models"
)

// UpdatePrivacySettings replaces userID's settings wholesale. The directory keeps
// its own copy, so later edits to settings by the caller have no effect.
func (d *Directory) UpdatePrivacySettings(userID uuid.UUID, settings *models.PrivacySettings) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.accounts[userID]; !ok {
		d.observe(opUpdatePrivacy, metrics.OutcomeRejected)
		return ErrUserNotFound
	}

	d.privacy[userID] = settings.Clone()

	d.observe(opUpdatePrivacy, metrics.OutcomeOK)
	d.logger.Debug("Privacy settings updated", map[string]interface{}{
		"user_id":       userID.String(),
		"visible_count": len(settings.VisibleFriends()),
	})
	return nil
}

// PrivacySettings returns a copy of userID's current settings, empty if unknown.
func (d *Directory) PrivacySettings(userID uuid.UUID) *models.PrivacySettings {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.privacy[userID].Clone()
}
