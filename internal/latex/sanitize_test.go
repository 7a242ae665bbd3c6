package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeIntroScenario(t *testing.T) {
	s, err := NewSanitizer(ModeLegacy, true)
	require.NoError(t, err)

	// The section group is already closed by the one `}` in the text, so the
	// legacy balancer appends nothing.
	body := s.Sanitize("\\section{Intro}\nHello & welcome")
	assert.Equal(t, "\\section{Intro}\nHello \\& welcome", body)

	doc := Assemble(body, Metadata{ReportPeriod: "Q1 2025", DateGenerated: "April 19, 2025"})
	assert.Equal(t, 1, strings.Count(doc, BeginDocument))
	assert.Equal(t, 1, strings.Count(doc, EndDocument))
	assert.Contains(t, doc, "\\section{Intro}\nHello \\& welcome\n\n\\end{document}")
}

func TestSanitizeUnclosedSection(t *testing.T) {
	s, err := NewSanitizer(ModeLegacy, true)
	require.NoError(t, err)

	assert.Equal(t, "\\section{Intro\nHello \\& welcome}", s.Sanitize("\\section{Intro\nHello & welcome"))
}

func TestSanitizeFullModelResponse(t *testing.T) {
	raw := "```latex\n" +
		"\\documentclass[12pt]{article}\n" +
		"\\usepackage{hyperref}\n" +
		"\\title{Grant Report}\n" +
		"\\begin{document}\n" +
		"\\maketitle\n" +
		"\\section{Program Report}\n" +
		"Walterâ€™s House & the â€œHope Gardenâ€\u009d initiative.\n" +
		"\\textbf{Meals served: 3120\n" +
		"\\end{document}\n" +
		"```\n"

	tests := []struct {
		mode string
		want string
	}{
		{ModeLegacy, "\\section{Program Report}\nWalter's House \\& the \"Hope Garden\" initiative.\n\\textbf{Meals served: 3120\n"},
		{ModeDepth, "\\section{Program Report}\nWalter's House \\& the \"Hope Garden\" initiative.\n\\textbf{Meals served: 3120\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			s, err := NewSanitizer(tt.mode, true)
			require.NoError(t, err)

			body := s.Sanitize(raw)
			assert.Equal(t, tt.want, body)

			doc := Assemble(body, Metadata{ReportPeriod: "Q1 2025", DateGenerated: "April 19, 2025"})
			assert.Equal(t, 1, strings.Count(doc, BeginDocument))
			assert.Equal(t, 1, strings.Count(doc, EndDocument))
		})
	}
}

func TestSanitizeWithoutFenceUnwrapping(t *testing.T) {
	s, err := NewSanitizer(ModeLegacy, false)
	require.NoError(t, err)

	assert.Equal(t, "```latex\nA \\& B\n```", s.Sanitize("```latex\nA & B\n```"))
}

func TestSanitizeZeroValueUsesLegacy(t *testing.T) {
	var s Sanitizer
	assert.Equal(t, `\emph{x}`, s.Sanitize(`\emph{x`))
}

func TestNewSanitizerRejectsUnknownMode(t *testing.T) {
	_, err := NewSanitizer("bogus", true)
	assert.Error(t, err)
}
