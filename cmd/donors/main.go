package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/donor-medians/internal/config"
	"github.com/rickgao/donor-medians/internal/database"
	"github.com/rickgao/donor-medians/internal/feed"
	"github.com/rickgao/donor-medians/internal/median"
	"github.com/rickgao/donor-medians/internal/metrics"
	"github.com/rickgao/donor-medians/internal/pipeline"
	"github.com/rickgao/donor-medians/internal/record"
	"github.com/rickgao/donor-medians/internal/version"
	"github.com/rickgao/donor-medians/internal/writer"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [input zip_out date_out]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, flag.Args()); err != nil {
		slog.Error("donors failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, args []string) error {
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyArgs(cfg, args); err != nil {
		return err
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	runID := uuid.New()
	logger.Info("starting donors", append(version.Attrs(),
		"instance_id", cfg.Instance.ID,
		"run_id", runID,
		"config", configPath,
	)...)

	rounding, ok := median.RoundingByName(cfg.Batch.Rounding)
	if !ok {
		return fmt.Errorf("unknown rounding mode %q", cfg.Batch.Rounding)
	}

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	input, err := os.Open(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer input.Close()

	zipOut, err := writer.CreateFile(cfg.Output.ZipPath, cfg.Output.TrailingNewline)
	if err != nil {
		return err
	}
	defer zipOut.Close()

	dateOut, err := writer.CreateFile(cfg.Output.DatePath, cfg.Output.TrailingNewline)
	if err != nil {
		return err
	}
	defer dateOut.Close()

	p := pipeline.New(pipeline.Config{
		RunID:        runID,
		QueueSize:    cfg.Pipeline.QueueSize,
		DrainSize:    cfg.Pipeline.DrainSize,
		MaxLineBytes: cfg.Input.MaxLineBytes,
		Rounding:     rounding,
	}, record.NewExtractor(cfg.Input, cfg.Validation), m, logger)
	p.AddZipSink(zipOut)
	p.AddDateSink(dateOut)

	var db pinger
	var dbWriter *writer.DBWriter
	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Reports.Host,
			"port", cfg.Database.Reports.Port,
			"database", cfg.Database.Reports.Name,
		)
		pool, err := database.Connect(ctx, cfg.Database.Reports, cfg.Instance.ID)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		if err := database.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		logger.Info("database connected")

		db = pool
		dbWriter = writer.NewDBWriter(pool, runID, cfg.Database.BatchSize, logger)
		p.AddZipSink(dbWriter)
		p.AddDateSink(dbWriter)
	}

	var server *http.Server
	var hub *feed.Hub
	if cfg.Server.Enabled {
		hub = feed.NewHub(m, logger)
		p.AddZipSink(hub)

		server = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newHandler(cfg.Server, reg, hub, p, db),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("starting server", "port", cfg.Server.Port)
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server error", "error", err)
			}
		}()
	}

	res, runErr := p.Run(ctx, input)

	if runErr == nil && dbWriter != nil {
		runErr = dbWriter.Flush(ctx)
	}
	if err := zipOut.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close zip output: %w", err)
	}
	if err := dateOut.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close date output: %w", err)
	}

	if runErr != nil {
		shutdown(server, hub, logger)
		return runErr
	}

	logger.Info("run complete",
		"lines", res.LinesRead,
		"zip_reports", res.ZipReports,
		"date_reports", res.DateReports,
		"zip_keys", res.ZipKeys,
		"duration", res.Duration,
		"zip_out", cfg.Output.ZipPath,
		"date_out", cfg.Output.DatePath,
	)
	if dbWriter != nil {
		st := dbWriter.Stats()
		logger.Info("database writer stats", "inserts", st.Inserts, "conflicts", st.Conflicts, "flushes", st.Flushes)
	}

	if server != nil {
		logger.Info("serving until interrupted",
			"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port),
		)
		<-ctx.Done()
		logger.Info("shutting down...")
	}
	shutdown(server, hub, logger)

	logger.Info("donors stopped")
	return nil
}

// applyArgs overrides the input and output paths with positional arguments.
func applyArgs(cfg *config.Config, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 3:
		cfg.Input.Path = args[0]
		cfg.Output.ZipPath = args[1]
		cfg.Output.DatePath = args[2]
		return nil
	default:
		return fmt.Errorf("expected 0 or 3 positional arguments (input zip_out date_out), got %d", len(args))
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func shutdown(server *http.Server, hub *feed.Hub, logger *slog.Logger) {
	if hub != nil {
		hub.Close()
	}
	if server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown", "error", err)
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

type progresser interface {
	RunID() uuid.UUID
	Progress() pipeline.Result
}

// newHandler serves health, metrics and the live feed.
func newHandler(cfg config.ServerConfig, reg *prometheus.Registry, hub http.Handler, p progresser, db pinger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		progress := p.Progress()
		health := struct {
			Status     string         `json:"status"`
			RunID      string         `json:"run_id"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			RunID:      p.RunID().String(),
			Components: make(map[string]any),
		}

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["database"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["database"] = "connected"
			}
		}

		health.Components["pipeline"] = map[string]int64{
			"lines_read":   progress.LinesRead,
			"zip_reports":  progress.ZipReports,
			"date_records": progress.DateRecords,
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.Handle(cfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle(cfg.FeedPath, hub)

	return mux
}
