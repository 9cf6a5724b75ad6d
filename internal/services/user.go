package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/minisocial/internal/metrics"
	"github.com/HammerMeetNail/minisocial/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	errNoHasher      = errors.New("no password hasher configured")
)

// RegisterUser creates an account with an empty request queue and empty privacy
// settings. The username is stored exactly as given; duplicates are accepted
// unless WithUniqueUsernames is set.
func (d *Directory) RegisterUser(username, email, secret string) (*models.Account, error) {
	if d.hasher == nil {
		return nil, errNoHasher
	}

	hash, err := d.hasher.HashPassword(secret)
	if err != nil {
		d.observe(opRegister, metrics.OutcomeRejected)
		return nil, fmt.Errorf("registering %q: %w", username, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.uniqueUsernames {
		if _, ok := d.findByUsernameLocked(username); ok {
			d.observe(opRegister, metrics.OutcomeRejected)
			return nil, ErrUsernameTaken
		}
	}

	account := models.NewAccount(models.CreateAccountParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}, d.now())

	d.accounts[account.ID] = account
	d.accountOrder = append(d.accountOrder, account.ID)
	d.requests[account.ID] = []models.FriendRequest{}
	d.privacy[account.ID] = &models.PrivacySettings{}

	d.observe(opRegister, metrics.OutcomeOK)
	d.metrics.SetAccounts(len(d.accounts))
	d.logger.Debug("Registered user", map[string]interface{}{
		"user_id":  account.ID.String(),
		"username": account.Username,
	})

	return account, nil
}

// Login returns the first account registered under username when secret
// matches. Unknown usernames and wrong secrets both yield ErrInvalidCredentials.
func (d *Directory) Login(username, secret string) (*models.Account, error) {
	d.mu.RLock()
	account, ok := d.findByUsernameLocked(username)
	d.mu.RUnlock()

	// The hash is immutable after registration, so the comparison runs unlocked.
	if !ok || !account.Authenticate(secret) {
		d.observe(opLogin, metrics.OutcomeRejected)
		d.logger.Warn("Login failed", map[string]interface{}{"username": username})
		return nil, ErrInvalidCredentials
	}

	d.observe(opLogin, metrics.OutcomeOK)
	d.logger.Debug("Login succeeded", map[string]interface{}{
		"user_id":  account.ID.String(),
		"username": account.Username,
	})
	return account, nil
}

func (d *Directory) User(id uuid.UUID) (*models.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return account, nil
}

// FindByUsername returns the first account registered under username.
func (d *Directory) FindByUsername(username string) (*models.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.findByUsernameLocked(username)
	if !ok {
		return nil, ErrUserNotFound
	}
	return account, nil
}

// Users lists accounts in registration order.
func (d *Directory) Users() []*models.Account {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]*models.Account, 0, len(d.accountOrder))
	for _, id := range d.accountOrder {
		users = append(users, d.accounts[id])
	}
	return users
}

func (d *Directory) findByUsernameLocked(username string) (*models.Account, bool) {
	for _, id := range d.accountOrder {
		if a := d.accounts[id]; a.Username == username {
			return a, true
		}
	}
	return nil, false
}
