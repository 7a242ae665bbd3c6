package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPreambleKeepsBodyLines(t *testing.T) {
	body := "\\section{Overview}\nWe served 487 clients.\n\\begin{itemize}\n\\item Meals\n\\end{itemize}\n"
	assert.Equal(t, body, StripPreamble(body))
}

func TestStripPreambleRemovesOnlyPreamble(t *testing.T) {
	in := "\\documentclass[12pt]{article}\n" +
		"\\usepackage[margin=1in]{geometry}\n" +
		"  \\usepackage{hyperref}\n" +
		"\\geometry{a4paper}\n" +
		"\\pagenumbering{arabic}\n" +
		"\\title{Grant Report}\n" +
		"\\author{Fourth \\& Hope}\n" +
		"\\date{\\today}\n" +
		"\\begin{document}\n" +
		"\t\\maketitle\n" +
		"\\end{document}"
	assert.Equal(t, "", StripPreamble(in))
}

func TestStripPreambleMixed(t *testing.T) {
	in := "\\documentclass{article}\n\\begin{document}\n\\section{Intro}\nText\n\\end{document}\n"
	assert.Equal(t, "\\section{Intro}\nText\n", StripPreamble(in))
}

func TestStripPreambleMatchesWholeCommandsOnly(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"longer command name", "\\titlepage\n"},
		{"wrong case", "\\Title{X}\n"},
		{"not at line start", "See \\usepackage{x} in the appendix.\n"},
		{"environment other than document", "\\begin{table}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.in, StripPreamble(tt.in))
		})
	}
}

func TestStripPreambleIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"\\title{A}\n\\title{B}\nbody\n\\date{x}",
		"\\usepackage{a}\r\n\\section{A}\r\n",
		"line\n\n\\maketitle\n\nline\n",
	}
	for _, in := range inputs {
		once := StripPreamble(in)
		assert.Equal(t, once, StripPreamble(once), "input %q", in)
	}
}
