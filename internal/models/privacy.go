package models

import (
	"slices"

	"github.com/google/uuid"
)

// PrivacySettings is an explicit allow-list of accounts that may see the
// owner's posts regardless of friendship. The zero value is empty and usable.
type PrivacySettings struct {
	visible []uuid.UUID
}

func NewPrivacySettings(visible ...uuid.UUID) *PrivacySettings {
	p := &PrivacySettings{}
	for _, id := range visible {
		p.AddVisibleFriend(id)
	}
	return p
}

func (p *PrivacySettings) AddVisibleFriend(id uuid.UUID) {
	if !slices.Contains(p.visible, id) {
		p.visible = append(p.visible, id)
	}
}

func (p *PrivacySettings) RemoveVisibleFriend(id uuid.UUID) {
	if i := slices.Index(p.visible, id); i >= 0 {
		p.visible = slices.Delete(p.visible, i, i+1)
	}
}

// IsPostVisible reports allow-list membership only; friendship is checked
// separately by the caller.
func (p *PrivacySettings) IsPostVisible(id uuid.UUID) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.visible, id)
}

func (p *PrivacySettings) VisibleFriends() []uuid.UUID {
	if p == nil || len(p.visible) == 0 {
		return []uuid.UUID{}
	}
	return slices.Clone(p.visible)
}

func (p *PrivacySettings) Clone() *PrivacySettings {
	if p == nil {
		return &PrivacySettings{}
	}
	return &PrivacySettings{visible: slices.Clone(p.visible)}
}
