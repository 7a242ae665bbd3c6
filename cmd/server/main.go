package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/api"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/archive"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/clients"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/compiler"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/config"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/generate"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/latex"
	"github.com/Atticus-Wong/HopeHub-hackdavis-25/internal/report"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	creds := option.WithCredentialsFile(cfg.CredentialsFile)

	// Initialize clients.
	projectID := cfg.FirestoreProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	fs, err := firestore.NewClient(ctx, projectID, creds)
	if err != nil {
		return err
	}
	defer fs.Close()

	gen, err := generate.New(ctx, generate.Config{
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

	tex := compiler.New(compiler.Options{
		Binary:     cfg.CompilerBin,
		Timeout:    cfg.CompileTimeout,
		ScratchDir: cfg.ScratchDir,
	}, log)

	var archiver report.Archiver
	if cfg.ArchiveBucket != "" {
		gcs, err := storage.NewClient(ctx, creds)
		if err != nil {
			return err
		}
		defer gcs.Close()
		archiver = archive.NewGCS(gcs, cfg.ArchiveBucket, log)
	}

	reports := report.NewService(gen, sanitizer, tex, archiver, report.Options{
		GenerateTimeout:       cfg.GenerateTimeout,
		MaxConcurrentCompiles: cfg.MaxConcurrentCompiles,
		StatsWindow:           cfg.StatsWindow,
	}, log)

	// Initialize HTTP servers.
	clientSrv := &http.Server{
		Addr:         ":" + cfg.ClientsPort,
		Handler:      api.NewClientServer(clients.NewFirestoreStore(fs, cfg.ClientsCollection), log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	reportSrv := &http.Server{
		Addr:        ":" + cfg.ReportsPort,
		Handler:     api.NewReportServer(reports, log, cfg),
		ReadTimeout: 30 * time.Second,
		// Handlers stop at ReportTimeout; the slack leaves room to write the
		// timeout response.
		WriteTimeout: cfg.ReportTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{clientSrv, reportSrv} {
		g.Go(func() error {
			log.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	// Graceful shutdown.
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return errors.Join(clientSrv.Shutdown(shutdownCtx), reportSrv.Shutdown(shutdownCtx))
	})

	log.Info("starting hopehub",
		"clients_port", cfg.ClientsPort,
		"reports_port", cfg.ReportsPort,
		"provider", cfg.GeneratorProvider,
		"model", gen.Model(),
	)
	return g.Wait()
}

