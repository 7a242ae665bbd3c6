package latex

import (
	"fmt"
	"strings"
)

// Metadata fills the title block of an assembled report.
type Metadata struct {
	ReportPeriod  string `json:"reportPeriod"`
	DateGenerated string `json:"dateGenerated"`
}

const (
	BeginDocument = `\begin{document}`
	EndDocument   = `\end{document}`
)

const documentTemplate = `\documentclass[12pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage{hyperref}
\usepackage{graphicx}
\pagenumbering{arabic}

%% Document metadata
\title{Grant Report: %s}
\author{Fourth \& Hope}
\date{%s}

` + BeginDocument + `
\maketitle

%s

` + EndDocument + `
`

// Assemble wraps a sanitized body in the report template. The metadata is
// inserted verbatim.
func Assemble(body string, meta Metadata) string {
	return fmt.Sprintf(documentTemplate, meta.ReportPeriod, meta.DateGenerated, strings.TrimSpace(body))
}
