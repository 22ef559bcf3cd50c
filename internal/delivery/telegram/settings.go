package telegram

import (
	"fmt"
	"strconv"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

func renderSettings(s entities.Settings) string {
	return fmt.Sprintf(
		"<b>⚙️ Ayarlar</b>\n\n"+
			"🗣 <b>Okuma dili:</b> %s\n"+
			"⏩ <b>Okuma hızı:</b> %sx\n"+
			"👁 <b>Cevabı her zaman göster:</b> %s\n",
		escape(s.Language),
		strconv.FormatFloat(s.Rate, 'f', -1, 64),
		formatBool(s.ShowAnswer),
	)
}

func formatBool(b bool) string {
	if b {
		return "Açık ✅"
	}
	return "Kapalı ❌"
}
