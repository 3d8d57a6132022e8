// messages.go contains reply texts and message builders for Telegram.

package telegram

import (
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const msgCommands = "/today - ayah of the day\n" +
	"/random - a random ayah\n" +
	"/ayah S A - surah S, ayah or range A (example: /ayah 2 255)"

const (
	msgWelcome = "As-salamu alaykum! I print ayat of the Qur'an with their translation.\n\n" + msgCommands
	msgHelp    = msgCommands + "\n\nAn ayah can be a single number (255) or a range (1-5)."

	msgUseAyah        = "Use: /ayah 2 255 or /ayah 1 1-7."
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command. Available commands:\n\n" + msgCommands
)

// maxMessageLength is Telegram's limit for one text message, in characters.
const maxMessageLength = 4096

func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// splitMessage breaks text into chunks of at most limit characters,
// preferring paragraph then word boundaries.
func splitMessage(text string, limit int) []string {
	var chunks []string
	for utf8.RuneCountInString(text) > limit {
		cut := byteOffset(text, limit)
		head := text[:cut]

		at := strings.LastIndex(head, "\n\n")
		if at <= 0 {
			at = strings.LastIndex(head, " ")
		}
		if at <= 0 {
			at = cut
		}

		chunks = append(chunks, strings.TrimSpace(text[:at]))
		text = strings.TrimSpace(text[at:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// byteOffset returns the byte index of the n-th rune of s.
func byteOffset(s string, n int) int {
	i := 0
	for pos := range s {
		if i == n {
			return pos
		}
		i++
	}
	return len(s)
}
