package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-fixture-summary/internal/models"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

var markdownReplacer = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

func escapeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}

// FormatSummary renders the match as a MarkdownV2 message. narrative may be empty.
func FormatSummary(summary *models.MatchSummary, narrative string) string {
	home := models.Deref(summary.HomeTeam.Name, "Home")
	away := models.Deref(summary.AwayTeam.Name, "Away")

	var b strings.Builder
	fmt.Fprintf(&b, "⚽ *%s %s %s*\n", escapeMarkdown(home), escapeMarkdown(models.Deref(summary.Score, "vs")), escapeMarkdown(away))
	if summary.Competition != nil {
		fmt.Fprintf(&b, "🏆 %s\n", escapeMarkdown(*summary.Competition))
	}
	if summary.Date != nil {
		when := *summary.Date
		if summary.Time != nil {
			when += " " + *summary.Time
		}
		fmt.Fprintf(&b, "📅 %s\n", escapeMarkdown(when))
	}
	if summary.Venue != nil {
		fmt.Fprintf(&b, "📍 %s\n", escapeMarkdown(*summary.Venue))
	}
	if summary.MatchStatus != nil {
		fmt.Fprintf(&b, "⏱️ %s\n", escapeMarkdown(*summary.MatchStatus))
	}

	if summary.ActionLog != nil {
		for _, ev := range *summary.ActionLog {
			minute := models.Deref(ev.Minute, "?") + models.Deref(ev.ExtraTime, "")
			line := fmt.Sprintf("%s' %s %s", minute, models.Deref(ev.Type, ""), models.Deref(ev.Player, ""))
			fmt.Fprintf(&b, "• %s\n", escapeMarkdown(strings.TrimSpace(line)))
		}
	}

	if narrative != "" {
		fmt.Fprintf(&b, "\n📝 %s\n", escapeMarkdown(strings.TrimSpace(narrative)))
	}
	if summary.MatchID != nil {
		fmt.Fprintf(&b, "🔖 Match ID: %s\n", escapeMarkdown(*summary.MatchID))
	}
	return b.String()
}

func (b *Bot) SendSummary(summary *models.MatchSummary, narrative string) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatSummary(summary, narrative))
	msg.ParseMode = "MarkdownV2"
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
