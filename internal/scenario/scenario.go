// Package scenario drives a Directory from a YAML script. The runner plays the
// part of an interactive client: it logs users in and keeps the returned
// accounts as their sessions for later steps.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/HammerMeetNail/minisocial/internal/logging"
	"github.com/HammerMeetNail/minisocial/internal/models"
	"github.com/HammerMeetNail/minisocial/internal/services"
)

// Step operations.
const (
	OpRegister      = "register"
	OpLogin         = "login"
	OpFriendRequest = "friend_request"
	OpAcceptRequest = "accept_request"
	OpRejectRequest = "reject_request"
	OpPost          = "post"
	OpComment       = "comment"
	OpPrivacy       = "privacy"
	OpMessage       = "message"
	OpMessages      = "messages"
	OpFeed          = "feed"
	OpFriends       = "friends"
	OpUnfriend      = "unfriend"
	OpPending       = "pending"
	OpIsFriend      = "is_friend"
)

var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrUnknownOp     = errors.New("unknown op")
	ErrUnknownRef    = errors.New("unknown post ref")
	ErrMissingField  = errors.New("missing required field")
	ErrLoginRejected = errors.New("login rejected")
)

type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one call against the directory. Which fields apply depends on Op.
type Step struct {
	Op       string   `yaml:"op"`
	User     string   `yaml:"user,omitempty"`
	Email    string   `yaml:"email,omitempty"`
	Password string   `yaml:"password,omitempty"`
	To       string   `yaml:"to,omitempty"`
	From     string   `yaml:"from,omitempty"`
	Content  string   `yaml:"content,omitempty"`
	Ref      string   `yaml:"ref,omitempty"`
	Visible  []string `yaml:"visible,omitempty"`
	// ExpectFail marks a step whose rejection is part of the script.
	ExpectFail bool `yaml:"expect_fail,omitempty"`
}

func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	return &s, nil
}

type Runner struct {
	dir      services.DirectoryInterface
	out      io.Writer
	logger   *logging.Logger
	sessions map[string]*models.Account
	refs     map[string]*models.Post
}

func NewRunner(dir services.DirectoryInterface, out io.Writer, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Default
	}
	return &Runner{
		dir:      dir,
		out:      out,
		logger:   logger,
		sessions: make(map[string]*models.Account),
		refs:     make(map[string]*models.Post),
	}
}

// Session returns the account username logged in as, if any.
func (r *Runner) Session(username string) (*models.Account, bool) {
	a, ok := r.sessions[username]
	return a, ok
}

// Run executes steps in order and stops at the first unexpected failure.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	r.logger.Info("Running scenario", map[string]interface{}{
		"name":  s.Name,
		"steps": len(s.Steps),
	})

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}

		err := r.exec(step)
		switch {
		case err != nil && step.ExpectFail:
			r.logger.Debug("Step failed as expected", map[string]interface{}{
				"step":  i + 1,
				"op":    step.Op,
				"error": err.Error(),
			})
		case err != nil:
			r.logger.Error("Step failed", map[string]interface{}{
				"step":  i + 1,
				"op":    step.Op,
				"error": err.Error(),
			})
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		case step.ExpectFail:
			return fmt.Errorf("step %d (%s): expected failure but succeeded", i+1, step.Op)
		}
	}
	return nil
}

func (r *Runner) exec(step Step) error {
	switch step.Op {
	case OpRegister:
		if step.User == "" {
			return fmt.Errorf("%w: user", ErrMissingField)
		}
		_, err := r.dir.RegisterUser(step.User, step.Email, step.Password)
		return err

	case OpLogin:
		account, err := r.dir.Login(step.User, step.Password)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrLoginRejected, step.User, err)
		}
		r.sessions[step.User] = account
		return nil

	case OpFriendRequest:
		sender, err := r.session(step.User)
		if err != nil {
			return err
		}
		recipient, err := r.dir.FindByUsername(step.To)
		if err != nil {
			return fmt.Errorf("recipient %q: %w", step.To, err)
		}
		return r.dir.SendFriendRequest(sender.ID, recipient.ID)

	case OpAcceptRequest, OpRejectRequest:
		user, err := r.session(step.User)
		if err != nil {
			return err
		}
		sender, err := r.dir.FindByUsername(step.From)
		if err != nil {
			return fmt.Errorf("sender %q: %w", step.From, err)
		}
		if step.Op == OpAcceptRequest {
			return r.dir.AcceptFriendRequest(user.ID, sender.ID)
		}
		return r.dir.RejectFriendRequest(user.ID, sender.ID)

	case OpPost:
		author, err := r.session(step.User)
		if err != nil {
			return err
		}
		post, err := r.dir.CreatePost(author.ID, step.Content)
		if err != nil {
			return err
		}
		if step.Ref != "" {
			r.refs[step.Ref] = post
		}
		return nil

	case OpComment:
		author, err := r.session(step.User)
		if err != nil {
			return err
		}
		post, ok := r.refs[step.Ref]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRef, step.Ref)
		}
		_, err = r.dir.AddCommentToPost(author.ID, post.ID, step.Content)
		return err

	case OpPrivacy:
		owner, err := r.session(step.User)
		if err != nil {
			return err
		}
		settings := models.NewPrivacySettings()
		for _, name := range step.Visible {
			viewer, err := r.dir.FindByUsername(name)
			if err != nil {
				return fmt.Errorf("visible user %q: %w", name, err)
			}
			settings.AddVisibleFriend(viewer.ID)
		}
		return r.dir.UpdatePrivacySettings(owner.ID, settings)

	case OpMessage:
		sender, err := r.session(step.User)
		if err != nil {
			return err
		}
		recipient, err := r.dir.FindByUsername(step.To)
		if err != nil {
			return fmt.Errorf("recipient %q: %w", step.To, err)
		}
		return r.dir.SendDirectMessage(sender.ID, recipient.ID, step.Content)

	case OpMessages:
		as, err := r.session(step.User)
		if err != nil {
			return err
		}
		peer, err := r.dir.FindByUsername(step.To)
		if err != nil {
			return fmt.Errorf("peer %q: %w", step.To, err)
		}
		msgs := r.dir.DirectMessagesFrom(as.ID, peer.ID)
		if _, err := fmt.Fprintf(r.out, "== messages %s -> %s (%d)\n", as.Username, peer.Username, len(msgs)); err != nil {
			return err
		}
		for _, m := range msgs {
			if _, err := fmt.Fprintf(r.out, "  %s\n", m); err != nil {
				return err
			}
		}
		return nil

	case OpFeed:
		viewer, err := r.session(step.User)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(r.out, "== feed for %s\n", viewer.Username); err != nil {
			return err
		}
		return r.dir.RenderNewsFeed(r.out, viewer.ID)

	case OpFriends:
		user, err := r.session(step.User)
		if err != nil {
			return err
		}
		names := make([]string, 0)
		for _, f := range r.dir.Friends(user.ID) {
			names = append(names, f.Username)
		}
		_, err = fmt.Fprintf(r.out, "== friends of %s: %s\n", user.Username, strings.Join(names, ", "))
		return err

	case OpUnfriend, OpIsFriend:
		user, err := r.session(step.User)
		if err != nil {
			return err
		}
		other, err := r.dir.FindByUsername(step.To)
		if err != nil {
			return fmt.Errorf("friend %q: %w", step.To, err)
		}
		if step.Op == OpUnfriend {
			return r.dir.RemoveFriend(user.ID, other.ID)
		}
		_, err = fmt.Fprintf(r.out, "== %s friends with %s: %t\n", user.Username, other.Username, r.dir.IsFriend(user.ID, other.ID))
		return err

	case OpPending:
		user, err := r.session(step.User)
		if err != nil {
			return err
		}
		names := make([]string, 0)
		for _, req := range r.dir.PendingRequests(user.ID) {
			names = append(names, req.SenderUsername)
		}
		_, err = fmt.Fprintf(r.out, "== pending for %s: %s\n", user.Username, strings.Join(names, ", "))
		return err

	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
}

func (r *Runner) session(username string) (*models.Account, error) {
	account, ok := r.sessions[username]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotLoggedIn, username)
	}
	return account, nil
}
