package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/compiler"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/generate"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/latex"
	"github.com/google/uuid"
)

// Compiler turns an assembled LaTeX document into PDF bytes.
type Compiler interface {
	Compile(ctx context.Context, document string) (*compiler.Result, error)
}

// Archiver stores a finished PDF and returns where it went.
type Archiver interface {
	Archive(ctx context.Context, period, reportID string, pdf []byte) (string, error)
}

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	Metrics               generate.Metrics
	GenerateTimeout       time.Duration
	MaxConcurrentCompiles int
	StatsWindow           time.Duration
}

// Report is a compiled grant report.
type Report struct {
	ID       string
	Filename string
	PDF      []byte
	// Pages is zero when the PDF could not be inspected.
	Pages      int
	ArchiveURI string
}

// Service produces grant reports: it prompts the model, sanitizes and
// assembles the answer, then compiles it. One Service is shared by all
// requests.
type Service struct {
	gen       generate.Generator
	sanitizer *latex.Sanitizer
	compiler  Compiler
	archiver  Archiver
	metrics   generate.Metrics

	genTimeout time.Duration
	compileSem chan struct{}
	stats      *Stats
	log        *slog.Logger
}

// NewService wires the report pipeline. archiver may be nil.
func NewService(gen generate.Generator, sanitizer *latex.Sanitizer, c Compiler, archiver Archiver, opts Options, log *slog.Logger) *Service {
	if opts.Metrics.ReportPeriod == "" {
		opts.Metrics = generate.Q1Fixture
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = 90 * time.Second
	}
	if opts.MaxConcurrentCompiles <= 0 {
		opts.MaxConcurrentCompiles = 2
	}
	return &Service{
		gen:        gen,
		sanitizer:  sanitizer,
		compiler:   c,
		archiver:   archiver,
		metrics:    opts.Metrics,
		genTimeout: opts.GenerateTimeout,
		compileSem: make(chan struct{}, opts.MaxConcurrentCompiles),
		stats:      NewStats(opts.StatsWindow),
		log:        log.With("component", "report"),
	}
}

func (s *Service) Stats() *Stats { return s.stats }

func (s *Service) Model() string { return s.gen.Model() }

// Metadata returns the title block values of the reports this Service makes.
func (s *Service) Metadata() latex.Metadata {
	return latex.Metadata{
		ReportPeriod:  s.metrics.ReportPeriod,
		DateGenerated: s.metrics.DateGenerated,
	}
}

// Document asks the model for a report body and returns the full LaTeX
// document, ready to compile.
func (s *Service) Document(ctx context.Context) (string, error) {
	parts, err := generate.PromptParts(s.metrics)
	if err != nil {
		return "", err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	start := time.Now()
	raw, err := s.gen.Generate(genCtx, parts)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = generate.ErrEmptyResponse
	}
	s.stats.Generation.Observe(time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("generate report body: %w", err)
	}

	body := s.sanitizer.Sanitize(raw)
	return latex.Assemble(body, s.Metadata()), nil
}

// Generate produces one report end to end.
func (s *Service) Generate(ctx context.Context) (*Report, error) {
	id := uuid.NewString()
	log := s.log.With("report_id", id, "period", s.metrics.ReportPeriod)

	doc, err := s.Document(ctx)
	if err != nil {
		log.Error("report generation failed", "phase", "generate", "error", err)
		return nil, err
	}

	res, err := s.compile(ctx, doc)
	if err != nil {
		log.Error("report generation failed", "phase", "compile", "error", err)
		return nil, err
	}

	rep := &Report{
		ID:       id,
		Filename: Filename(s.metrics.ReportPeriod),
		PDF:      res.PDF,
	}

	if pages, err := compiler.PageCount(res.PDF); err != nil {
		log.Warn("could not inspect compiled pdf", "error", err)
	} else {
		rep.Pages = pages
	}

	if s.archiver != nil {
		uri, err := s.archiver.Archive(ctx, s.metrics.ReportPeriod, id, res.PDF)
		if err != nil {
			log.Warn("archive failed", "error", err)
		} else {
			rep.ArchiveURI = uri
		}
	}

	log.Info("report generated",
		"bytes", len(rep.PDF),
		"pages", rep.Pages,
		"compile_ms", res.Duration.Milliseconds(),
	)
	return rep, nil
}

// compile runs the compiler once a concurrency slot is free.
func (s *Service) compile(ctx context.Context, doc string) (*compiler.Result, error) {
	select {
	case s.compileSem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for compiler slot: %w", ctx.Err())
	}
	defer func() { <-s.compileSem }()

	start := time.Now()
	res, err := s.compiler.Compile(ctx, doc)
	s.stats.Compile.Observe(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("compile report: %w", err)
	}
	return res, nil
}

// Filename is the attachment name for a period's report, e.g.
// FourthAndHope_Q1-2025.pdf.
func Filename(period string) string {
	return "FourthAndHope_" + strings.Join(strings.Fields(period), "-") + ".pdf"
}
