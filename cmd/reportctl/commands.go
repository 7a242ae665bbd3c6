package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/compiler"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/config"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/generate"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/latex"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/report"
)

func logger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
}

func newCompiler(cfg config.Config, log *slog.Logger) *compiler.Compiler {
	return compiler.New(compiler.Options{
		Binary:     cfg.CompilerBin,
		Timeout:    cfg.CompileTimeout,
		ScratchDir: cfg.ScratchDir,
	}, log)
}

func generateCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Prompt the model for the current report and write the PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.ValidateGenerator(); err != nil {
				return err
			}
			log := logger(cmd)

			gen, err := generate.New(cmd.Context(), generate.Config{
				Provider: cfg.GeneratorProvider,
				APIKey:   cfg.GeneratorAPIKey(),
				BaseURL:  cfg.GeneratorBaseURL(),
				Model:    cfg.GeneratorModel,
			})
			if err != nil {
				return err
			}
			gen = generate.WithRetry(gen, cfg.GenerateAttempts, log)

			sanitizer, err := latex.NewSanitizer(cfg.BraceMode, cfg.UnwrapFences)
			if err != nil {
				return err
			}

			svc := report.NewService(gen, sanitizer, newCompiler(cfg, log), nil, report.Options{
				GenerateTimeout: cfg.GenerateTimeout,
			}, log)

			rep, err := svc.Generate(cmd.Context())
			if err != nil {
				return describe(cmd, err)
			}

			path := out
			if path == "" {
				path = rep.Filename
			}
			if err := os.WriteFile(path, rep.PDF, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %d pages)\n", path, len(rep.PDF), rep.Pages)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PDF path (default: the report's attachment name)")
	return cmd
}

func sanitizeCmd() *cobra.Command {
	var braceMode string
	var unwrap bool

	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Clean raw model output read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := latex.NewSanitizer(braceMode, unwrap)
			if err != nil {
				return err
			}
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), s.Sanitize(string(raw)))
			return err
		},
	}
	cmd.Flags().StringVar(&braceMode, "brace-mode", latex.ModeLegacy, "brace balancing: legacy|depth")
	cmd.Flags().BoolVar(&unwrap, "unwrap-fences", true, "extract the body from a markdown code fence")
	return cmd
}

func assembleCmd() *cobra.Command {
	meta := latex.Metadata{
		ReportPeriod:  generate.Q1Fixture.ReportPeriod,
		DateGenerated: generate.Q1Fixture.DateGenerated,
	}

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Wrap a sanitized body from stdin in the report preamble",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), latex.Assemble(string(body), meta))
			return err
		},
	}
	cmd.Flags().StringVar(&meta.ReportPeriod, "period", meta.ReportPeriod, "report period shown in the title")
	cmd.Flags().StringVar(&meta.DateGenerated, "date", meta.DateGenerated, "generation date shown in the title")
	return cmd
}

func compileCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "compile <file.tex>",
		Short: "Compile a complete LaTeX document to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			cfg := config.Load()

			res, err := newCompiler(cfg, logger(cmd)).Compile(cmd.Context(), string(src))
			if err != nil {
				return describe(cmd, err)
			}

			path := out
			if path == "" {
				path = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".pdf"
			}
			if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(res.PDF))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PDF path (default: input with .pdf extension)")
	return cmd
}

// describe prints compiler diagnostics before returning err.
func describe(cmd *cobra.Command, err error) error {
	var (
		exitErr *compiler.ExitError
		missing *compiler.MissingOutputError
		timeout *compiler.TimeoutError
	)
	w := cmd.ErrOrStderr()
	switch {
	case errors.As(err, &exitErr):
		fmt.Fprintln(w, exitErr.Stderr)
		if exitErr.Excerpt != "" {
			fmt.Fprintf(w, "--- source lines 15-25 ---\n%s\n", exitErr.Excerpt)
		}
	case errors.As(err, &missing):
		fmt.Fprintln(w, missing.Stderr)
	case errors.As(err, &timeout):
		fmt.Fprintln(w, timeout.Stderr)
	}
	return err
}
