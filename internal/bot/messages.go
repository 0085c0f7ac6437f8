package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/timmy/memezvukach/internal/service"
)

// Keyboard button labels double as free-text commands.
const (
	buttonFind   = "❓Найти мем🔍"
	buttonRandom = "🎲Рандом🎲"
	buttonHelp   = "🚀Помощь🆘"
)

// menuKeyboard is the persistent reply keyboard shown under every response.
var menuKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonFind),
		tgbotapi.NewKeyboardButton(buttonRandom),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonHelp),
	),
)

func startText() string {
	return fmt.Sprintf("%s MEMEZVUKACH врывается!\n\n"+
		"Бро, мемы на максималках! Вбей название или жми:\n"+
		"❓ Найти мем — ищу по вайбу\n"+
		"🎲 Рандом — угарный движ\n"+
		"🚀 Помощь — как не лажануть",
		service.StatusEmojis["start"])
}

func helpText() string {
	return fmt.Sprintf("%s MEMEZVUKACH: гайд для тусы\n\n"+
		"Кидаю мемы и ору их на максималках!\n\n"+
		"Команды:\n"+
		"/start — врываемся в угар %s\n"+
		"/help — этот гайд %s\n"+
		"/random — рандомный мем с озвучкой %s\n\n"+
		"❓ Найти мем — вбей название или описание\n"+
		"🎲 Рандом — мемный сюрприз\n"+
		"%s Озвучка — жесть и пипец!\n\n"+
		"Го жечь, пацан! 🔥",
		service.StatusEmojis["help"], service.StatusEmojis["start"],
		service.StatusEmojis["help"], service.StatusEmojis["random"],
		service.StatusEmojis["audio"])
}

func searchPromptText() string {
	return fmt.Sprintf("%s Вбей название мема или описание!", service.StatusEmojis["search"])
}

func loadingText() string {
	return fmt.Sprintf("Ищу твой мем... %s", service.StatusEmojis["loading"])
}

func loadingRandomText() string {
	return fmt.Sprintf("Копаем мемчик... %s", service.StatusEmojis["loading"])
}

func emptyCatalogText() string {
	return fmt.Sprintf("%s Мемы кончились! Кидай что-нибудь! 😣", service.StatusEmojis["error"])
}

func notFoundText() string {
	return fmt.Sprintf("%s Не нашёл мем! Попробуй другой! 😣", service.StatusEmojis["error"])
}

func brokenText() string {
	return fmt.Sprintf("%s Чёт сломалось! Го заново? 😣", service.StatusEmojis["error"])
}

func rateLimitedText(seconds int) string {
	return fmt.Sprintf("%s Полегче, бро! Остынь ещё %d сек. 🧊", service.StatusEmojis["error"], seconds)
}
