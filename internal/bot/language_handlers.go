package bot

import (
	"context"
	"strings"

	"gopkg.in/telebot.v4"
)

// languageHandler presents the language selection menu.
func (b *Bot) languageHandler(tCtx telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	lang := b.language(ctx)
	return b.send(tCtx, "text", b.localizer.Get(lang, "language.select"), b.buildLanguageMenu(lang))
}

// languageChangeHandler stores the chosen language and confirms in it.
func (b *Bot) languageChangeHandler(tCtx telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	callbackData := tCtx.Callback().Unique
	b.log.DebugContext(ctx, "User selected language", "callbackData", callbackData)

	langCode, ok := strings.CutPrefix(callbackData, "language_")
	if !ok {
		b.log.ErrorContext(ctx, "Unknown language callback", "data", callbackData)
		return tCtx.Respond(&telebot.CallbackResponse{Text: "Unknown language"})
	}

	settings, err := b.svc.SetLanguage(ctx, langCode)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to set language", "error", err, "language", langCode)
		b.metrics.SentMessages.WithLabelValues("error").Inc()
		return tCtx.Respond(&telebot.CallbackResponse{Text: b.t(ctx, "error.internal")})
	}

	b.log.InfoContext(ctx, "Language changed", "language", settings.Language)

	b.metrics.SentMessages.WithLabelValues("respond").Inc()
	_ = tCtx.Respond(&telebot.CallbackResponse{Text: "✅"})

	return b.send(tCtx, "text", b.localizer.Get(settings.Language, "language.changed"), buildMainMenu())
}
