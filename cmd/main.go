package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/weatherboard/internal/api"
	"github.com/tejusbharadwaj/weatherboard/internal/config"
	"github.com/tejusbharadwaj/weatherboard/internal/formatter"
	"github.com/tejusbharadwaj/weatherboard/internal/metrics"
	"github.com/tejusbharadwaj/weatherboard/internal/pipeline"
	"github.com/tejusbharadwaj/weatherboard/internal/render"
	"github.com/tejusbharadwaj/weatherboard/internal/scheduler"
	"github.com/tejusbharadwaj/weatherboard/internal/snapshot"
)

// Command weatherboard fetches the OpenWeatherMap one-call forecast for a fixed
// location and renders it to the console, an HTML report and optionally a PNG.
//
// Usage:
//
//	weatherboard [flags]
//
// The flags are:
//
//	-config string
//	      path to config file (default "config.yaml")
//	-schedule string
//	      cron spec; when set, repeat the run on that schedule until interrupted
func main() {
	// Parse command line flags
	flags := parseFlags()

	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Load configuration
	appConfig, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger
	logger := newLogger(appConfig.Logging)

	p, err := buildPipeline(appConfig, logger)
	if err != nil {
		logger.Fatalf("Failed to set up pipeline: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.Schedule == "" {
		if err := p.Run(ctx); err != nil {
			logger.Fatalf("Weather run failed: %v", err)
		}
		return
	}

	// Run once immediately, then on the schedule
	if err := p.Run(ctx); err != nil {
		logger.WithError(err).Error("Initial weather run failed")
	}

	sched := scheduler.NewScheduler(ctx, flags.Schedule, p, logger)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}

	<-ctx.Done()
	logger.Println("Received shutdown signal, stopping scheduler")
	sched.Stop()
	logger.Println("Scheduler stopped")
}

type Flags struct {
	ConfigPath string
	Schedule   string
}

func parseFlags() *Flags {
	f := &Flags{}

	flag.StringVar(&f.ConfigPath, "config", "config.yaml", "Path to the configuration file")
	flag.StringVar(&f.Schedule, "schedule", "", "Cron spec to repeat the run on (e.g. \"*/30 * * * *\")")

	flag.Parse()

	return f
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warnf("Unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func buildPipeline(cfg *config.Config, logger *logrus.Logger) (*pipeline.Pipeline, error) {
	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, err
	}

	client := api.NewClient(api.Config{
		BaseURL:     cfg.API.BaseURL,
		APIKey:      cfg.API.Key,
		Lat:         cfg.Location.Lat,
		Lon:         cfg.Location.Lon,
		Timeout:     cfg.API.Timeout,
		MinInterval: cfg.API.MinInterval,
	}, logger)

	var renderers []render.Renderer
	for _, name := range cfg.Output.Renderers {
		switch name {
		case "console":
			renderers = append(renderers, render.NewConsole(os.Stdout, cfg.Output.Graph))
		case "html":
			htmlRenderer, err := render.NewHTML(cfg.Output.Template, cfg.Output.HTML)
			if err != nil {
				return nil, err
			}
			renderers = append(renderers, htmlRenderer)
		default:
			return nil, fmt.Errorf("unknown renderer %q", name)
		}
	}

	p := &pipeline.Pipeline{
		Fetcher: client,
		Formatter: formatter.New(formatter.Options{
			DailyCount:  cfg.Forecast.DailyCount,
			HourlyCount: cfg.Forecast.HourlyCount,
			Location:    loc,
		}),
		Renderers:       renderers,
		Label:           cfg.Location.Label,
		Logger:          logger,
		Metrics:         metrics.New(),
		MetricsTextfile: cfg.Metrics.Textfile,
	}

	if cfg.Output.Screenshot != "" {
		p.Capturer = snapshot.NewChrome()
		p.ScreenshotPath = cfg.Output.Screenshot
	}

	return p, nil
}
