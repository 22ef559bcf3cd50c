package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// rateOptions are the speeds offered in the settings keyboard.
var rateOptions = []float64{0.75, 1, 1.5, 2}

// buildBankKeyboard builds the bank picker, one bank per row.
func buildBankKeyboard(sources []entities.BankSource) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(sources))
	for i, src := range sources {
		label := fmt.Sprintf("%d. %s", i+1, src.Title)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildBankCallback(i+1)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResumeKeyboard builds the yes/no keyboard for continuing a saved session.
func buildResumeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Devam et", buildResumeCallback(resumeYes)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Baştan başla", buildResumeCallback(resumeNo)),
		),
	)
}

// choiceLabel returns the button label for a choice with its mark.
func choiceLabel(index int, mark entities.Classification) string {
	letter := strconv.Itoa(index + 1)
	if index < len(choiceLetters) {
		letter = choiceLetters[index]
	}

	switch mark {
	case entities.Correct:
		return "✅ " + letter
	case entities.Incorrect:
		return "❌ " + letter
	default:
		return letter
	}
}

// buildQuestionKeyboard builds the choice row and the navigation row for the
// question at cursor.
func buildQuestionKeyboard(cursor int, marks []entities.ChoiceMark) tgbotapi.InlineKeyboardMarkup {
	choices := make([]tgbotapi.InlineKeyboardButton, 0, len(marks))
	for _, m := range marks {
		choices = append(choices, tgbotapi.NewInlineKeyboardButtonData(
			choiceLabel(m.Index, m.Classification),
			buildChoiceCallback(cursor, m.Index),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		choices,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Önceki", buildNavCallback(navPrev)),
			tgbotapi.NewInlineKeyboardButtonData("🔊 Oku", buildReadCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Sonraki ▶️", buildNavCallback(navNext)),
		),
	)
}

// buildReminderKeyboard builds the keyboard attached to study reminders.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Devam et", buildNavCallback(navCurrent)),
		),
	)
}

// buildSettingsKeyboard builds main settings keyboard.
func buildSettingsKeyboard(settings entities.Settings) tgbotapi.InlineKeyboardMarkup {
	answerLabel := "👁 Cevabı göster: kapalı"
	if settings.ShowAnswer {
		answerLabel = "👁 Cevabı göster: açık"
	}

	rates := make([]tgbotapi.InlineKeyboardButton, 0, len(rateOptions))
	for _, r := range rateOptions {
		value := strconv.FormatFloat(r, 'f', -1, 64)
		label := value + "x"
		if r == settings.Rate {
			label = "• " + label
		}
		rates = append(rates, tgbotapi.NewInlineKeyboardButtonData(label, buildSettingsCallback(settingsRate, value)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(answerLabel, buildSettingsCallback(settingsAnswer)),
		),
		rates,
	)
}
