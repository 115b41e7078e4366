package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/weatherboard/internal/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		Location: config.LocationConfig{Label: "Athens, GA", Lat: 33.9519, Lon: -83.3576},
		API:      config.APIConfig{BaseURL: "http://localhost/onecall", Key: "secret"},
		Forecast: config.ForecastConfig{DailyCount: 7, HourlyCount: 12},
		Output: config.OutputConfig{
			Renderers: []string{"console", "html"},
			Template:  "templates/weather.html",
			HTML:      "weather/weather.html",
		},
	}
}

func TestBuildPipeline(t *testing.T) {
	logger, _ := test.NewNullLogger()

	p, err := buildPipeline(baseConfig(), logger)
	require.NoError(t, err)

	require.Len(t, p.Renderers, 2)
	assert.Equal(t, "console", p.Renderers[0].Name())
	assert.Equal(t, "html", p.Renderers[1].Name())
	assert.Nil(t, p.Capturer)
	assert.Equal(t, "Athens, GA", p.Label)
}

func TestBuildPipelineWithScreenshot(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := baseConfig()
	cfg.Output.Screenshot = "weather/weather.png"

	p, err := buildPipeline(cfg, logger)
	require.NoError(t, err)

	assert.NotNil(t, p.Capturer)
	assert.Equal(t, "weather/weather.png", p.ScreenshotPath)
}

func TestBuildPipelineErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()

	cfg := baseConfig()
	cfg.Output.Renderers = []string{"pdf"}
	_, err := buildPipeline(cfg, logger)
	assert.Error(t, err)

	cfg = baseConfig()
	cfg.Forecast.Timezone = "Nowhere/Special"
	_, err = buildPipeline(cfg, logger)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger := newLogger(config.LoggingConfig{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = newLogger(config.LoggingConfig{Level: "nonsense", Format: "text"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
