// Package notify implements synchronous, best-effort single-recipient
// account-state emails. These are 1:1 events with no fan-out, so they
// bypass the queue entirely.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"blogapp/internal/logger"
	"blogapp/internal/mailer"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

// ErrUnknownEventKind is returned when no content mapping exists for a kind.
var ErrUnknownEventKind = errors.New("notify: unknown event kind")

// Notifier dispatches direct notifications. Failure never propagates
// to the caller: the triggering admin action is authoritative and has
// already been committed before the notification is attempted.
type Notifier struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	sender  mailer.Sender
	baseURL string
	log     *slog.Logger
}

// New constructs a Notifier. baseURL is used to build deep links in
// rendered emails.
func New(
	users repository.UserRepository,
	posts repository.PostRepository,
	sender mailer.Sender,
	baseURL string,
	log *slog.Logger,
) *Notifier {
	return &Notifier{
		users:   users,
		posts:   posts,
		sender:  sender,
		baseURL: baseURL,
		log:     log,
	}
}

// Notify sends one account-state email. The target user is always
// resolved fresh from the store; caller-supplied data is not trusted.
// For post events the post row is also re-fetched — except when it was
// already deleted, in which case the event's title snapshot is used.
//
// All failures are swallowed and logged.
func (n *Notifier) Notify(ctx context.Context, kind model.EventKind, userID int, post *model.PostRef) {
	if err := n.notify(ctx, kind, userID, post); err != nil {
		n.log.Error("notification not delivered",
			logger.Component("notify"),
			logger.EventKind(string(kind)),
			logger.UserID(userID),
			logger.Error(err))
	}
}

func (n *Notifier) notify(ctx context.Context, kind model.EventKind, userID int, post *model.PostRef) error {
	user, err := n.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", userID, err)
	}

	data := contentData{Name: user.FullName()}
	if kind.RequiresPost() {
		if post == nil {
			return fmt.Errorf("event %s requires a post reference", kind)
		}
		title, err := n.resolveTitle(ctx, kind, post)
		if err != nil {
			return err
		}
		data.Title = title
		data.PostURL = fmt.Sprintf("%s/posts/%d", n.baseURL, post.ID)
	}

	subject, body, err := renderContent(kind, data)
	if err != nil {
		return err
	}

	if err := n.sender.Send(ctx, mailer.Message{
		To:       user.Email,
		ToName:   user.FullName(),
		Subject:  subject,
		BodyHTML: body,
	}); err != nil {
		return fmt.Errorf("send to %s: %w", user.Email, err)
	}

	n.log.Info("notification sent",
		logger.Component("notify"),
		logger.EventKind(string(kind)),
		logger.UserID(userID))
	return nil
}

// resolveTitle prefers the live row; the snapshot only stands in for a
// post that no longer exists (deleted before the notification fired).
func (n *Notifier) resolveTitle(ctx context.Context, kind model.EventKind, ref *model.PostRef) (string, error) {
	p, err := n.posts.FindByID(ctx, ref.ID)
	if err == nil {
		return p.Title, nil
	}
	if kind == model.EventPostDeleted && ref.Title != "" {
		return ref.Title, nil
	}
	return "", fmt.Errorf("resolve post %d: %w", ref.ID, err)
}
