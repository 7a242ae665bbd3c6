package latex

import "regexp"

// preambleLines match a whole line (and its line break) that starts with a
// preamble or document-boundary command. Matching is case-sensitive.
var preambleLines = []*regexp.Regexp{
	preambleLine(`\\documentclass\b`),
	preambleLine(`\\usepackage\b`),
	preambleLine(`\\geometry\b`),
	preambleLine(`\\pagenumbering\b`),
	preambleLine(`\\title\b`),
	preambleLine(`\\author\b`),
	preambleLine(`\\date\b`),
	preambleLine(`\\maketitle\b`),
	preambleLine(`\\begin\{document\}`),
	preambleLine(`\\end\{document\}`),
}

func preambleLine(command string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*` + command + `.*(?:\n|$)`)
}

// StripPreamble deletes every line the model should not have emitted: the
// document class, packages, page setup, title block and document markers.
// It is idempotent.
func StripPreamble(text string) string {
	for _, re := range preambleLines {
		text = re.ReplaceAllString(text, "")
	}
	return text
}
