// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// Error messages.
const (
	msgInternalError    = "Bir şeyler ters gitti. Lütfen daha sonra tekrar deneyin."
	msgUnknownCommand   = "Bilinmeyen komut. Komut listesi için /help yazın."
	msgNoSession        = "Aktif oturum yok. Bir soru bankası seçmek için /start yazın."
	msgNoBank           = "Önce bir soru bankası seçin: /start"
	msgEmptyBank        = "Bu bankada geçerli soru bulunamadı."
	msgEmptySubset      = "Bu aralıkta soru bulunamadı."
	msgInvalidNumber    = "Geçersiz numara!"
	msgUseJump          = "Kullanım: /jump 25"
	msgUseShuffle       = "Kullanım: /shuffle veya /shuffle 10 50"
	msgUseLang          = "Kullanım: /lang tr-TR"
	msgInvalidLang      = "Geçersiz dil kodu. Örnek: /lang tr-TR"
	msgUseSpeed         = "Kullanım: /speed 1.5 (0.5 ile 3 arası)"
	msgBankFallback     = "Geçersiz seçim, varsayılan banka açılıyor."
	msgStaleQuestion    = "Bu soru artık güncel değil."
	msgNotOwner         = "Bu bot yalnızca sahibine yanıt verir. Sohbet kimliğiniz: %d"
	msgNarrationRunning = "Sesli okuma zaten devam ediyor. Durdurmak için /stop yazın."
	msgNothingToStop    = "Devam eden sesli okuma yok."
)

// Informational messages.
const (
	msgWelcome = "<b>İSG Soru Bankası</b>\n\n" +
		"Soruları tek tek çözün, ilerlemenizi kaydedin ve soruları sesli dinleyin.\n\n" +
		"Başlamak için bir soru bankası seçin:"
	msgChooseBank        = "Bir soru bankası seçin:"
	msgFirstQuestion     = "İlk sorudasınız."
	msgFinished          = "🎉 Tüm sorular bitti!"
	msgNarrationStarted  = "🔊 Sesli okuma başladı. Durdurmak için /stop yazın."
	msgNarrationStopped  = "⏹ Sesli okuma durduruldu."
	msgNarrationFinished = "🎉 Sesli okuma tamamlandı, tüm sorular bitti!"
	msgResumePrompt      = "Bu banka için kaydedilmiş bir oturum var (%d/%d).\nKaldığınız yerden devam etmek ister misiniz?"
	msgShuffled          = "🔀 Sorular karıştırıldı (%d soru)."
	msgReminder          = "⏰ Çalışmaya devam etme zamanı!\n\n%s\nBakılan soru sayısı: %d/%d"
	msgHelp              = "<b>Komutlar</b>\n\n" +
		"/start — soru bankası seç\n" +
		"/bank N — N numaralı bankayı aç (1, 2, 3)\n" +
		"/next — sonraki soru\n" +
		"/prev — önceki soru\n" +
		"/jump N — N numaralı soruya git\n" +
		"/shuffle — soruları karıştır\n" +
		"/shuffle A B — yalnızca A ile B arasındaki soruları karıştır\n" +
		"/read — soruları ve cevapları sesli oku\n" +
		"/stop — sesli okumayı durdur\n" +
		"/progress — ilerleme\n" +
		"/settings — ayarlar\n" +
		"/lang KOD — okuma dili (ör. tr-TR)\n" +
		"/speed X — okuma hızı (0.5–3)\n" +
		"/answer — doğru cevabı her zaman göster\n\n" +
		"Soru numarasını yazarak da o soruya gidebilirsiniz."
)

var choiceLetters = []string{"A", "B", "C", "D"}

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// newPlainMessage creates a plain message without parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newHTMLEdit creates an edit with HTML parse mode.
func newHTMLEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// renderQuestion formats the question with its choices. The correct choice
// is highlighted only when marks classify it.
func renderQuestion(q entities.Question, progress entities.Progress, marks []entities.ChoiceMark) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>Soru %d/%d</b>\n\n", progress.Viewed, progress.Total)
	sb.WriteString(escape(q.Text))
	sb.WriteString("\n\n")

	for i, choice := range q.Choices {
		line := escape(choice)
		if i < len(marks) {
			switch marks[i].Classification {
			case entities.Correct:
				line = "✅ <b>" + line + "</b>"
			case entities.Incorrect:
				line = "❌ <s>" + line + "</s>"
			}
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatProgress renders the viewed counter shown under questions and in reminders.
func formatProgress(p entities.Progress) string {
	return fmt.Sprintf("%s\nBakılan soru sayısı: %d/%d (%.1f%%)",
		buildProgressBar(p.Viewed, p.Total, 20), p.Viewed, p.Total, p.Percentage())
}
