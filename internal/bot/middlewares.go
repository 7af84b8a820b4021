package bot

import (
	"strings"

	"gopkg.in/telebot.v4"
)

// OwnerMiddleware drops every update that does not come from the configured
// owner. An owner id of 0 disables the check.
func (b *Bot) OwnerMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(ctx telebot.Context) error {
		sender := ctx.Sender()
		if b.ownerID == 0 {
			return next(ctx)
		}

		if sender == nil || sender.ID != b.ownerID {
			var userID int64
			var username string
			if sender != nil {
				userID, username = sender.ID, sender.Username
			}
			b.log.Info("Access denied", "username", username, "id", userID)

			if ctx.Callback() != nil {
				return ctx.Respond(&telebot.CallbackResponse{Text: "Access denied.", ShowAlert: true})
			}
			return ctx.Send("Access to this bot is denied.")
		}

		return next(ctx)
	}
}

// MetricsMiddleware counts every received command.
func (b *Bot) MetricsMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(ctx telebot.Context) error {
		if msg := ctx.Message(); msg != nil && strings.HasPrefix(msg.Text, "/") {
			command, _, _ := strings.Cut(msg.Text, " ")
			command, _, _ = strings.Cut(command, "@")
			b.metrics.CommandReceived.WithLabelValues(command).Inc()
		}
		return next(ctx)
	}
}
