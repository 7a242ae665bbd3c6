package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble(t *testing.T) {
	meta := Metadata{ReportPeriod: "Q1 2025", DateGenerated: "April 19, 2025"}
	doc := Assemble("\n\n\\section{Intro}\nHello \\& welcome\n\n", meta)

	assert.True(t, strings.HasPrefix(doc, "\\documentclass[12pt]{article}\n"))
	assert.Contains(t, doc, "\\usepackage[margin=1in]{geometry}\n")
	assert.Contains(t, doc, "\\usepackage{hyperref}\n\\usepackage{graphicx}\n")
	assert.Contains(t, doc, "\\pagenumbering{arabic}\n")
	assert.Contains(t, doc, "\n% Document metadata\n")
	assert.Contains(t, doc, "\\title{Grant Report: Q1 2025}\n")
	assert.Contains(t, doc, "\\author{Fourth \\& Hope}\n")
	assert.Contains(t, doc, "\\date{April 19, 2025}\n")
	assert.Contains(t, doc, "\\maketitle\n\n\\section{Intro}\nHello \\& welcome\n\n\\end{document}\n")
	assert.Equal(t, 1, strings.Count(doc, BeginDocument))
	assert.Equal(t, 1, strings.Count(doc, EndDocument))
	assert.Less(t, strings.Index(doc, BeginDocument), strings.Index(doc, "\\section{Intro}"))
}

func TestAssembleMetadataVerbatim(t *testing.T) {
	meta := Metadata{ReportPeriod: "FY 2025 (100% funded)", DateGenerated: "%s"}
	doc := Assemble("body", meta)

	assert.Contains(t, doc, "\\title{Grant Report: FY 2025 (100% funded)}")
	assert.Contains(t, doc, "\\date{%s}")
}
