package bot

import (
	"gopkg.in/telebot.v4"
)

// buildMainMenu creates the reply keyboard with the everyday commands.
func buildMainMenu() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text("/employees"), menu.Text("/clients")),
		menu.Row(menu.Text("/report"), menu.Text("/export")),
		menu.Row(menu.Text("/language")),
	)
	return menu
}

// buildLanguageMenu creates the inline keyboard of the supported languages.
func (b *Bot) buildLanguageMenu(lang string) *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data(b.localizer.Get(lang, "language.button.english"), "language_en")),
		menu.Row(menu.Data(b.localizer.Get(lang, "language.button.arabic"), "language_ar")),
		menu.Row(menu.Data(b.localizer.Get(lang, "language.button.french"), "language_fr")),
	)
	return menu
}
