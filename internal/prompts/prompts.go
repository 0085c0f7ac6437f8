package prompts

import "fmt"

// ============================================================================
// Phrase generation
// ============================================================================

// PhrasePrompt asks the text-generation endpoint for a short, punchy
// TikTok-style phrase in Russian, profanity-free.
const PhrasePrompt = "Сгенерируй дерзкую, абсурдную фразу на русском без мата в стиле TikTok, короткую и угарную."

// FallbackPhrases is the local phrase list used when the remote generator
// fails or keeps producing rejects. Per-user history excludes recently used
// entries until the whole list is exhausted.
var FallbackPhrases = []string{
	"Пипец, башню рвёт, блэ! 🤯",
	"Фигня, но угар, блин! 😝",
	"Чё за жесть, мать его?! 💥",
	"Кринж, но топчик, пипец! 💀",
	"Блин, это разнос! 🔥",
	"Блэ, мем порвал всё! 🍑",
	"Нафиг мозг, жги тусу! 🦍",
	"Похер, я в агонии! 🏆",
	"Это пипец, а не мем! 😵",
	"Го в тренды, фиг с ним! 🌈",
	"Чё за фигня, но пушка! 💣",
	"Мозг в отпуске, угар! 🦒",
	"Кринж уровня бог! 💿",
	"Жесть, блэ, держись! ⚡",
	"Похер всё, мем тащит! 🦄",
	"Это не мем, это пипец! 😈",
	"Трындец, башка в шоке! 🪐",
	"Блин, где мой фильтр?! 🦈",
	"Огонь, мать его, жги! 🔥",
	"Пипец, я в астрале! 🌌",
	"Мем порвал, как туз! 🃏",
	"Чё за дичь, но топ! 🦖",
	"Кринж, но я ору! 🗣️",
	"Похер, это разрыв! 💥",
	"Блэ, мем жёсткий! 🍺",
	"Нафиг, я в шоке! 😵",
	"Тусим, блин, пипец! 🪩",
	"Мозг офф, угар он! 🌟",
	"Фиг с ним, это топ! 🚀",
	"Жесть, я в кринже! 😣",
	"Пипец, мем унёс! 🦄",
	"Блин, это нереал! 😈",
	"Ору, как псих, блэ! 🗣️",
	"Нафиг всё, жги! 🔥",
	"Это фигня, но пушка! 💣",
	"Похер, я в трансе! 🪐",
	"Трындец, я в агонии! 🦍",
	"Чё за дичь, пипец! 😵",
	"Мем порвал, как бог! 🌈",
	"Топ, мать его, топ! 🦄",
}

// ============================================================================
// Voice synthesis
// ============================================================================

// TTSPrompt wraps the voice text in the delivery style instruction for the
// audio model.
func TTSPrompt(text string) string {
	return fmt.Sprintf("Озвучь это как дерзкий итальянский пацан с TikTok-вайбом, с абсурдной энергией и угаром: %s", text)
}

// ============================================================================
// Photo lookup
// ============================================================================

// PhotoSystemPrompt constrains the search assistant to a single URL or the
// fixed not-found marker, nothing else.
const PhotoSystemPrompt = `You are an image lookup assistant with web search capability.
The user names an internet meme. Reply with exactly one direct image URL
(https, ending in a common image extension or clearly an image CDN link)
showing that meme. No explanation, no markdown, no quotes.
If you cannot find a suitable image, reply with exactly: PHOTO_NOT_FOUND`

// PhotoUserPrompt names the meme in both languages to help the lookup.
func PhotoUserPrompt(nameEnglish, nameLocal string) string {
	if nameEnglish == "" || nameEnglish == nameLocal {
		return fmt.Sprintf("Find a picture of the meme %q.", nameLocal)
	}
	return fmt.Sprintf("Find a picture of the meme %q (also known as %q).", nameEnglish, nameLocal)
}
