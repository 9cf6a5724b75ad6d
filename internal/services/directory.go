package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/minisocial/internal/logging"
	"github.com/HammerMeetNail/minisocial/internal/metrics"
	"github.com/HammerMeetNail/minisocial/internal/models"
)

// Operation names used for logging and metrics.
const (
	opRegister       = "register_user"
	opLogin          = "login"
	opCreatePost     = "create_post"
	opAddComment     = "add_comment"
	opSendRequest    = "send_friend_request"
	opAcceptRequest  = "accept_friend_request"
	opRejectRequest  = "reject_friend_request"
	opRemoveFriend   = "remove_friend"
	opUpdatePrivacy  = "update_privacy_settings"
	opSendMessage    = "send_direct_message"
	opRenderNewsFeed = "render_news_feed"
)

// PasswordHasher produces the bcrypt hash stored on an account;
// models.Account.Authenticate checks secrets against it.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Directory owns every account, post, pending friend request and privacy
// setting. Accounts and posts refer to each other by ID only. All state is
// guarded by a single lock.
//
// The *models.Account and *models.Post values it returns are live, and their
// methods do not take that lock. Goroutines sharing a directory should read
// friends, comments and messages through Directory methods (Friends, IsFriend,
// NewsFeedEntries, DirectMessagesFrom) rather than through the returned values.
type Directory struct {
	mu sync.RWMutex

	hasher          PasswordHasher
	logger          *logging.Logger
	metrics         *metrics.Metrics
	now             func() time.Time
	timeFormat      string
	uniqueUsernames bool
	dedupeRequests  bool

	accounts     map[uuid.UUID]*models.Account
	accountOrder []uuid.UUID
	posts        []*models.Post
	postsByID    map[uuid.UUID]*models.Post
	requests     map[uuid.UUID][]models.FriendRequest
	privacy      map[uuid.UUID]*models.PrivacySettings
}

type Option func(*Directory)

func WithLogger(l *logging.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Directory) { d.metrics = m }
}

// WithClock overrides the wall clock used to stamp posts, comments and requests.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		if now != nil {
			d.now = now
		}
	}
}

func WithTimeFormat(layout string) Option {
	return func(d *Directory) {
		if layout != "" {
			d.timeFormat = layout
		}
	}
}

// WithUniqueUsernames rejects registration of a username that already exists.
func WithUniqueUsernames(enabled bool) Option {
	return func(d *Directory) { d.uniqueUsernames = enabled }
}

// WithDedupeRequests rejects a friend request already waiting in the recipient's queue.
func WithDedupeRequests(enabled bool) Option {
	return func(d *Directory) { d.dedupeRequests = enabled }
}

func NewDirectory(hasher PasswordHasher, opts ...Option) *Directory {
	d := &Directory{
		hasher:     hasher,
		logger:     logging.Default,
		now:        time.Now,
		timeFormat: time.RFC1123,
		accounts:   make(map[uuid.UUID]*models.Account),
		postsByID:  make(map[uuid.UUID]*models.Post),
		requests:   make(map[uuid.UUID][]models.FriendRequest),
		privacy:    make(map[uuid.UUID]*models.PrivacySettings),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Directory) observe(op, outcome string) {
	d.metrics.Observe(op, outcome)
}

// usernameLocked resolves an account's username. Callers hold d.mu.
func (d *Directory) usernameLocked(id uuid.UUID) string {
	if a, ok := d.accounts[id]; ok {
		return a.Username
	}
	return "unknown"
}
