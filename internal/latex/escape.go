package latex

import "strings"

// EscapeAmpersands turns every `&` not already preceded by a backslash into `\&`.
func EscapeAmpersands(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 16)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '&' && (i == 0 || text[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
