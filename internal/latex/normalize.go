package latex

import "strings"

// legacyQuotes maps UTF-8 curly quotes that were decoded as Windows-1252
// back to plain ASCII quotes.
var legacyQuotes = strings.NewReplacer(
	"â€œ", `"`, // opening double
	"â€\u009d", `"`, // closing double
	"â€˜", "'", // opening single
	"â€™", "'", // closing single
)

// NormalizePunctuation replaces mis-encoded quote sequences with ASCII quotes.
// All other text is left untouched.
func NormalizePunctuation(text string) string {
	return legacyQuotes.Replace(text)
}
