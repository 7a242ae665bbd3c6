package latex

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// UnwrapFence extracts LaTeX from a Markdown code fence. Text that is a single
// fenced block is replaced by the block's content. Otherwise the first block
// tagged latex or tex is used. Anything else is returned unchanged.
func UnwrapFence(raw string) string {
	if !strings.Contains(raw, "```") && !strings.Contains(raw, "~~~") {
		return raw
	}

	src := []byte(raw)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var first, tagged *ast.FencedCodeBlock
	blocks := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks++
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			continue
		}
		if first == nil {
			first = fenced
		}
		if tagged == nil {
			switch strings.ToLower(string(fenced.Language(src))) {
			case "latex", "tex":
				tagged = fenced
			}
		}
	}

	switch {
	case tagged != nil:
		return fenceContent(tagged, src)
	case blocks == 1 && first != nil:
		return fenceContent(first, src)
	}
	return raw
}

func fenceContent(block *ast.FencedCodeBlock, src []byte) string {
	var b strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
