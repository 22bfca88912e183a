package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of any Unicode whitespace into one space
//   - applies Unicode NFC so composed and decomposed forms compare equal
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = norm.NFC.String(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// CleanLabel trims a user-entered label and compresses inner whitespace
// without changing case, for display.
func CleanLabel(label string) string {
	return strings.Join(strings.Fields(norm.NFC.String(label)), " ")
}
