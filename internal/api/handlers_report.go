package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/compiler"
)

// handleGenerateReport renders the current period's grant report and
// returns it as a PDF attachment. Any request body is ignored.
func (s *ReportServer) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.cfg.ReportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ReportTimeout)
		defer cancel()
	}

	rep, err := s.reports.Generate(ctx)
	if err != nil {
		// The request budget covers the wait for a compile slot, so a
		// queued request still gets an answer before the write deadline.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && r.Context().Err() == nil {
			writeJSON(w, http.StatusGatewayTimeout, map[string]string{
				"error": fmt.Sprintf("report generation exceeded %s", s.cfg.ReportTimeout),
				"code":  "report_timeout",
			})
			return
		}
		writeReportError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rep.Filename))
	h.Set("Content-Length", strconv.Itoa(len(rep.PDF)))
	h.Set("X-Report-ID", rep.ID)
	if rep.Pages > 0 {
		h.Set("X-Report-Pages", strconv.Itoa(rep.Pages))
	}
	if rep.ArchiveURI != "" {
		h.Set("X-Report-Archive", rep.ArchiveURI)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(rep.PDF)
}

// writeReportError is the single place report failures become responses.
// Compiler failures carry the compiler's stderr; everything else carries
// only the error message.
func writeReportError(w http.ResponseWriter, err error) {
	var (
		exitErr *compiler.ExitError
		missing *compiler.MissingOutputError
		timeout *compiler.TimeoutError
	)

	switch {
	case errors.As(err, &exitErr):
		body := map[string]string{
			"error":  "LaTeX compilation failed",
			"code":   "compile_failed",
			"stderr": exitErr.Stderr,
		}
		if exitErr.Excerpt != "" {
			body["source_excerpt"] = exitErr.Excerpt
		}
		writeJSON(w, http.StatusInternalServerError, body)
	case errors.As(err, &missing):
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "LaTeX compiler reported success but produced no PDF",
			"code":   "output_missing",
			"stderr": missing.Stderr,
		})
	case errors.As(err, &timeout):
		writeJSON(w, http.StatusGatewayTimeout, map[string]string{
			"error":  fmt.Sprintf("LaTeX compilation timed out after %s", timeout.After),
			"code":   "compile_timeout",
			"stderr": timeout.Stderr,
		})
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *ReportServer) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.reports.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"model":      s.reports.Model(),
		"generation": stats.Generation.Snapshot(),
		"compile":    stats.Compile.Snapshot(),
	})
}
