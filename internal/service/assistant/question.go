package assistant

import (
	"strings"
	"unicode/utf8"
)

var questionWords = []string{
	"что ", "как ", "где ", "когда ", "почему ", "кто ", "какой ", "сколько ",
}

// IsQuestion guesses whether a text message is a question to the assistant
// rather than a note to save.
func IsQuestion(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" || utf8.RuneCountInString(t) >= 200 {
		return false
	}
	if strings.HasSuffix(t, "?") {
		return true
	}
	for _, w := range questionWords {
		if strings.HasPrefix(t, w) {
			return true
		}
	}
	return false
}
