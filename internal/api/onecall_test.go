package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL, key string) *Client {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewClient(Config{
		BaseURL: baseURL,
		APIKey:  key,
		Lat:     33.9519,
		Lon:     -83.3576,
		Timeout: 2 * time.Second,
	}, logger)
}

func TestFetch(t *testing.T) {
	fixture, err := os.ReadFile("testdata/onecall.json")
	require.NoError(t, err)

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"lat":   q.Get("lat"),
			"lon":   q.Get("lon"),
			"units": q.Get("units"),
			"appid": q.Get("appid"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "secret")
	resp, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"lat":   "33.9519",
		"lon":   "-83.3576",
		"units": "imperial",
		"appid": "secret",
	}, gotQuery)

	assert.Equal(t, "America/New_York", resp.Timezone)
	assert.Equal(t, int64(1718900000), resp.Current.Dt)
	assert.Equal(t, 84.47, resp.Current.Temp)
	assert.Len(t, resp.Hourly, 2)
	assert.Len(t, resp.Daily, 3)
	assert.Empty(t, resp.Daily[2].Weather)
}

func TestFetchMissingKeyMakesNoRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	resp, err := client.Fetch(context.Background())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"cod":401,"message":"Invalid API key"}`,
			wantErr: ErrHTTPStatus,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			wantErr: ErrHTTPStatus,
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"lat": 33.9,`,
			wantErr: ErrDecode,
		},
		{
			name:    "wrong type",
			status:  http.StatusOK,
			body:    `{"timezone":"America/New_York","current":{"dt":"soon"}}`,
			wantErr: ErrDecode,
		},
		{
			name:    "missing current",
			status:  http.StatusOK,
			body:    `{"timezone":"America/New_York","hourly":[],"daily":[]}`,
			wantErr: ErrDecode,
		},
		{
			name:    "daily entry without dt",
			status:  http.StatusOK,
			body:    `{"timezone":"America/New_York","current":{"dt":1718900000},"daily":[{"summary":"x"}]}`,
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL, "secret")
			resp, err := client.Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchStatusCodeIsExposed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, "secret").Fetch(context.Background())

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url, "secret").Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotContains(t, err.Error(), "secret")
	assert.NotContains(t, err.Error(), "appid")
}

func TestFetchBadBaseURLDoesNotLeakKey(t *testing.T) {
	_, err := newTestClient(t, "http://[::1", "secret").Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotContains(t, err.Error(), "secret")
}

func TestFetchMinIntervalHonorsContext(t *testing.T) {
	fixture, err := os.ReadFile("testdata/onecall.json")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	client := NewClient(Config{BaseURL: srv.URL, APIKey: "secret", MinInterval: time.Hour}, logger)

	_, err = client.Fetch(context.Background())
	require.NoError(t, err)

	// The second fetch would have to wait an hour; a short deadline cancels it.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Fetch(ctx)
	assert.ErrorIs(t, err, ErrTransport)
}
