// Package pipeline runs one weather report: fetch, format, render and an
// optional best-effort screenshot. Stages run strictly one after another.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/weatherboard/internal/formatter"
	"github.com/tejusbharadwaj/weatherboard/internal/metrics"
	"github.com/tejusbharadwaj/weatherboard/internal/models"
	"github.com/tejusbharadwaj/weatherboard/internal/render"
	"github.com/tejusbharadwaj/weatherboard/internal/snapshot"
)

// Fetcher is satisfied by *api.Client.
type Fetcher interface {
	Fetch(ctx context.Context) (*models.WeatherResponse, error)
}

type Pipeline struct {
	Fetcher   Fetcher
	Formatter *formatter.Formatter
	Renderers []render.Renderer
	Label     string

	// Capturer and ScreenshotPath enable the screenshot step; it only runs
	// after an HTML renderer produced a file.
	Capturer       snapshot.Capturer
	ScreenshotPath string

	// Logger defaults to the logrus standard logger and Metrics to a fresh
	// registry when left nil.
	Logger          *logrus.Logger
	Metrics         *metrics.Metrics
	MetricsTextfile string
}

// Run executes the pipeline once. Any fetch or render error aborts the run;
// a failed screenshot is only logged.
func (p *Pipeline) Run(ctx context.Context) (err error) {
	if p.Logger == nil {
		p.Logger = logrus.StandardLogger()
	}
	if p.Metrics == nil {
		p.Metrics = metrics.New()
	}

	log := p.Logger.WithField("run_id", uuid.NewString())
	started := time.Now()

	defer func() {
		p.Metrics.RunFinished(err)
		p.Metrics.ObserveStage("total", started)
		if p.MetricsTextfile != "" {
			if werr := p.Metrics.WriteTextfile(p.MetricsTextfile); werr != nil {
				log.WithError(werr).Warn("Failed to write metrics textfile")
			}
		}
	}()

	log.Info("Starting weather run")

	stageStart := time.Now()
	resp, err := p.Fetcher.Fetch(ctx)
	p.Metrics.ObserveStage("fetch", stageStart)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	log.WithFields(logrus.Fields{
		"hourly": len(resp.Hourly),
		"daily":  len(resp.Daily),
	}).Debug("Fetched forecast")

	stageStart = time.Now()
	report := p.Formatter.Format(resp, p.Label)
	p.Metrics.ObserveStage("format", stageStart)

	var htmlPath string
	for _, r := range p.Renderers {
		stageStart = time.Now()
		artifact, err := r.Render(report)
		p.Metrics.ObserveStage("render_"+r.Name(), stageStart)
		if err != nil {
			return fmt.Errorf("render %s: %w", r.Name(), err)
		}
		log.WithFields(logrus.Fields{
			"renderer": r.Name(),
			"artifact": artifact,
		}).Info("Rendered report")

		if r.Name() == "html" {
			htmlPath = artifact
		}
	}

	if p.Capturer != nil && p.ScreenshotPath != "" && htmlPath != "" {
		p.capture(ctx, log, htmlPath)
	}

	log.WithField("duration", time.Since(started).String()).Info("Weather run complete")
	return nil
}

func (p *Pipeline) capture(ctx context.Context, log *logrus.Entry, htmlPath string) {
	stageStart := time.Now()
	err := p.Capturer.Capture(ctx, htmlPath, p.ScreenshotPath)
	p.Metrics.ObserveStage("capture", stageStart)

	if err != nil {
		p.Metrics.CaptureFailures.Inc()
		log.WithError(err).WithField("path", p.ScreenshotPath).Warn("Screenshot capture failed, continuing without it")
		return
	}
	log.WithField("path", p.ScreenshotPath).Info("Captured screenshot")
}
