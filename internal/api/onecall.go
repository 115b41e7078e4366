// Package api implements the OpenWeatherMap one-call client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/tejusbharadwaj/weatherboard/internal/models"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/3.0/onecall"
	Units          = "imperial"

	maxErrorBody = 512
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrTransport     = errors.New("transport error")
	ErrHTTPStatus    = errors.New("unexpected http status")
	ErrDecode        = errors.New("decode error")
)

// HTTPStatusError carries the status code of a non-2xx provider response.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: got %d", ErrHTTPStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s: got %d: %s", ErrHTTPStatus, e.StatusCode, e.Body)
}

func (e *HTTPStatusError) Unwrap() error {
	return ErrHTTPStatus
}

// Config holds everything the client needs; nothing is read from the environment here.
type Config struct {
	BaseURL     string
	APIKey      string
	Lat         float64
	Lon         float64
	Timeout     time.Duration
	MinInterval time.Duration // minimum spacing between consecutive fetches
}

// Client fetches the one-call forecast for a single fixed coordinate pair.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	validate   *validator.Validate
	logger     *logrus.Logger
}

func NewClient(cfg Config, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		validate:   validator.New(),
		logger:     logger,
	}
}

// Fetch performs one GET against the one-call endpoint and decodes the body.
// There are no retries: the first failure is returned to the caller.
func (c *Client) Fetch(ctx context.Context) (*models.WeatherResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OWM_API_KEY is not set", ErrConfiguration)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait canceled: %v", ErrTransport, err)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(c.cfg.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(c.cfg.Lon, 'f', -1, 64))
	params.Set("units", Units)
	params.Set("appid", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, withoutURL(err))
	}

	c.logger.WithFields(logrus.Fields{
		"lat": c.cfg.Lat,
		"lon": c.cfg.Lon,
	}).Debug("Fetching one-call forecast")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, withoutURL(err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warnf("Failed to close response body: %v", cerr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return c.decode(body)
}

// withoutURL drops the request URL from net/http errors; it carries appid.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s %s: %w", urlErr.Op, redactedURL(urlErr.URL), urlErr.Err)
	}
	return err
}

func redactedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	return u.Redacted()
}

func (c *Client) decode(body []byte) (*models.WeatherResponse, error) {
	var weather models.WeatherResponse
	if err := json.Unmarshal(body, &weather); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// json.Unmarshal leaves absent fields zeroed; the struct tags name the ones
	// that must be present for the response to be usable.
	if err := c.validate.Struct(&weather); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &weather, nil
}
