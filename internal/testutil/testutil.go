// Package testutil provides shared fixtures for directory tests.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/HammerMeetNail/minisocial/internal/logging"
	"github.com/HammerMeetNail/minisocial/internal/metrics"
	"github.com/HammerMeetNail/minisocial/internal/models"
	"github.com/HammerMeetNail/minisocial/internal/services"
)

// Clock is a manually advanced clock for deterministic timestamps.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current instant and advances the clock by one second, so
// successive stamps are distinct and ordered.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

// Fixture bundles a directory with the collaborators tests inspect.
type Fixture struct {
	Directory *services.Directory
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
	Clock     *Clock
}

// NewFixture builds a directory with a cheap bcrypt cost, a silent logger, a
// private metrics registry and a fixed clock starting at 2024-01-01 UTC.
func NewFixture(t *testing.T, opts ...services.Option) *Fixture {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	clock := NewClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))

	base := []services.Option{
		services.WithLogger(logging.Nop()),
		services.WithMetrics(m),
		services.WithClock(clock.Now),
	}
	dir := services.NewDirectory(services.NewAuthService(bcrypt.MinCost), append(base, opts...)...)

	return &Fixture{
		Directory: dir,
		Metrics:   m,
		Registry:  reg,
		Clock:     clock,
	}
}

// NewDirectory is shorthand for NewFixture(t, opts...).Directory.
func NewDirectory(t *testing.T, opts ...services.Option) *services.Directory {
	t.Helper()
	return NewFixture(t, opts...).Directory
}

// MustRegister registers username with secret and a derived email address.
func MustRegister(t *testing.T, d *services.Directory, username, secret string) *models.Account {
	t.Helper()
	account, err := d.RegisterUser(username, username+"@example.com", secret)
	if err != nil {
		t.Fatalf("registering %s: %v", username, err)
	}
	return account
}

// MustBefriend sends and accepts a request so a and b are mutual friends.
func MustBefriend(t *testing.T, d *services.Directory, a, b *models.Account) {
	t.Helper()
	if err := d.SendFriendRequest(a.ID, b.ID); err != nil {
		t.Fatalf("sending request %s -> %s: %v", a.Username, b.Username, err)
	}
	if err := d.AcceptFriendRequest(b.ID, a.ID); err != nil {
		t.Fatalf("accepting request %s -> %s: %v", a.Username, b.Username, err)
	}
}
