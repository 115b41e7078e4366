package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tejusbharadwaj/weatherboard/internal/api"
	"github.com/tejusbharadwaj/weatherboard/internal/formatter"
	"github.com/tejusbharadwaj/weatherboard/internal/render"
)

// APIKeyEnv is the environment variable holding the OpenWeatherMap key.
const APIKeyEnv = "OWM_API_KEY"

// Config holds all configuration for our application
type Config struct {
	Location LocationConfig `mapstructure:"location"`
	API      APIConfig      `mapstructure:"api"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type LocationConfig struct {
	Label string  `mapstructure:"label"`
	Lat   float64 `mapstructure:"lat" validate:"gte=-90,lte=90"`
	Lon   float64 `mapstructure:"lon" validate:"gte=-180,lte=180"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	Key         string        `mapstructure:"key"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MinInterval time.Duration `mapstructure:"min_interval" validate:"gte=0"`
}

type ForecastConfig struct {
	DailyCount  int    `mapstructure:"daily_count" validate:"gt=0"`
	HourlyCount int    `mapstructure:"hourly_count" validate:"gt=0"`
	Timezone    string `mapstructure:"timezone"`
}

type OutputConfig struct {
	Renderers  []string `mapstructure:"renderers" validate:"min=1,dive,oneof=console html"`
	Template   string   `mapstructure:"template"`
	HTML       string   `mapstructure:"html"`
	Screenshot string   `mapstructure:"screenshot"`
	Graph      bool     `mapstructure:"graph"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load reads configuration from file and environment variables. A missing
// file is not an error: defaults and the environment are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if err := v.BindEnv("api.key", APIKeyEnv); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", APIKeyEnv, err)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		expanded, err := expand(data)
		if err != nil {
			return nil, err
		}
		if err := v.ReadConfig(bytes.NewReader(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// TimeLocation resolves forecast.timezone; empty means the process local zone.
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Forecast.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Forecast.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid forecast.timezone: %w", err)
	}
	return loc, nil
}

// expand normalizes the YAML and substitutes $VAR references from the environment.
func expand(data []byte) ([]byte, error) {
	// First unmarshal into a map to handle type conversions
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw config: %w", err)
	}

	normalized, err := yaml.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw config: %w", err)
	}

	return []byte(os.ExpandEnv(string(normalized))), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("location.label", "Athens, GA")
	v.SetDefault("location.lat", 33.9519)
	v.SetDefault("location.lon", -83.3576)

	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.min_interval", time.Minute)

	v.SetDefault("forecast.daily_count", formatter.DefaultDailyCount)
	v.SetDefault("forecast.hourly_count", formatter.DefaultHourlyCount)
	v.SetDefault("forecast.timezone", "")

	v.SetDefault("output.renderers", []string{"console"})
	v.SetDefault("output.template", render.DefaultTemplatePath)
	v.SetDefault("output.html", render.DefaultOutputPath)
	v.SetDefault("output.screenshot", "")
	v.SetDefault("output.graph", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("metrics.textfile", "")
}
