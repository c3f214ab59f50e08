package mailer

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/intlakaa/pkg/slogx"
)

// LogMailer writes invite emails to the contextual logger instead of
// sending them.
type LogMailer struct{}

func NewLogMailer() *LogMailer { return &LogMailer{} }

func (LogMailer) SendInvite(ctx context.Context, msg InviteEmail) error {
	slogx.FromContext(ctx).Info("invite email",
		slog.String("to", msg.To),
		slog.String("role", msg.Role),
		slog.String("invite_link", msg.Link),
		slog.Time("expires_at", msg.ExpiresAt),
	)
	return nil
}

func (LogMailer) Close() error { return nil }
