// Command inscribe runs the dictation engine against a plain-text document,
// reading transcript fragments from stdin (one fragment per line) and
// printing the resulting document on EOF.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/medvoice/inscribe/internal/command"
	"github.com/medvoice/inscribe/internal/config"
	"github.com/medvoice/inscribe/internal/engine"
	"github.com/medvoice/inscribe/internal/health"
	"github.com/medvoice/inscribe/internal/lexicon"
	"github.com/medvoice/inscribe/internal/observe"
	"github.com/medvoice/inscribe/pkg/editor/plaintext"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "path to the YAML configuration file (optional)")
	initialText := flag.String("text", "", "initial document content")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	// .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "inscribe: load .env: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inscribe: %v\n", err)
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	slog.SetDefault(newLogger(cfg.LogLevel))
	slog.Info("inscribe starting", "config", *configPath, "log_level", cfg.LogLevel)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Metrics ───────────────────────────────────────────────────────────────
	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		slog.Error("failed to initialise metrics provider", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			slog.Warn("metrics shutdown error", "err", err)
		}
	}()

	// ── Dictation pipeline ────────────────────────────────────────────────────
	norm, err := lexicon.New(cfg.Dictation.CustomVocabulary()...)
	if err != nil {
		slog.Error("invalid custom vocabulary", "err", err)
		return 1
	}

	control := plaintext.New(*initialText)
	eng := engine.New(control,
		engine.WithNormalizer(norm),
		engine.WithClassifier(command.New(cfg.Dictation.ClassifierOptions()...)),
		engine.WithMetrics(observe.Default()),
	)

	queue := engine.NewQueue(eng, cfg.QueueSize)
	queue.Start(ctx)

	// ── Metrics and health endpoint ───────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		probes := health.New(health.Probe{Name: "queue", Check: queue.Check})
		g.Go(func() error { return serveMetrics(gctx, cfg.MetricsAddr, probes) })
	}

	// ── Fragment loop ─────────────────────────────────────────────────────────
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		if err := queue.Submit(scanner.Text()); err != nil {
			slog.Error("submit failed", "err", err)
			break
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("stdin read error", "err", err)
	}

	queue.Close()
	queue.Wait()
	stop()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("metrics server error", "err", err)
	}

	fmt.Println(control.PlainText())
	return 0
}

// serveMetrics exposes the Prometheus /metrics endpoint plus the health
// probes until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string, probes *health.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	probes.Register(mux)

	srv := &http.Server{Addr: addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	slog.Info("metrics endpoint listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
