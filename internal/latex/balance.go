package latex

import (
	"fmt"
	"strings"
)

// Balancer appends closing braces to text that opens more groups than it closes.
type Balancer interface {
	Balance(text string) string
}

// Brace modes accepted by NewBalancer.
const (
	ModeLegacy = "legacy"
	ModeDepth  = "depth"
)

// TrackedOpeners are the commands LegacyBalancer counts.
var TrackedOpeners = []string{
	`\textbf{`,
	`\textit{`,
	`\section{`,
	`\subsection{`,
	`\emph{`,
}

// NewBalancer returns the balancer for a mode name. An empty mode is legacy.
func NewBalancer(mode string) (Balancer, error) {
	switch mode {
	case "", ModeLegacy:
		return LegacyBalancer{}, nil
	case ModeDepth:
		return DepthBalancer{}, nil
	default:
		return nil, fmt.Errorf("unknown brace mode %q", mode)
	}
}

// LegacyBalancer reproduces the pattern-by-pattern heuristic existing reports
// were generated with. For each opener it compares that opener's count with
// the count of every `}` in the text, then pads the end. The closing count is
// global and includes braces appended for earlier openers, so text mixing
// several tracked commands can stay unbalanced.
type LegacyBalancer struct {
	// Openers overrides TrackedOpeners when non-empty.
	Openers []string
}

func (b LegacyBalancer) Balance(text string) string {
	openers := b.Openers
	if len(openers) == 0 {
		openers = TrackedOpeners
	}

	for _, opener := range openers {
		openings := strings.Count(text, opener)
		closings := strings.Count(text, "}")
		if closings < openings {
			text += strings.Repeat("}", openings-closings)
		}
	}
	return text
}

// DepthBalancer tokenizes the text and keeps a single running depth counter.
// Escaped braces (`\{`, `\}`) and `%` comments are skipped, and a stray `}`
// at depth zero is left alone.
type DepthBalancer struct{}

func (DepthBalancer) Balance(text string) string {
	depth := 0
	inComment := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inComment {
			if c == '\n' {
				inComment = false
			}
			continue
		}
		switch c {
		case '\\':
			i++ // the next byte is escaped or starts a control word
		case '%':
			inComment = true
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}

	if depth == 0 {
		return text
	}
	if inComment {
		// A brace appended to a comment line would be swallowed.
		text += "\n"
	}
	return text + strings.Repeat("}", depth)
}
