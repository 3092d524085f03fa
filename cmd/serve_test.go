package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amakhet/soil-api/internal/config"
	"github.com/amakhet/soil-api/internal/provider"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:                8000,
			AllowedOrigins:      []string{"http://localhost:3000"},
			ShutdownTimeoutSecs: 10,
		},
		Log:      config.LogConfig{Level: "info", Format: "json"},
		Provider: config.ProviderConfig{Mode: config.ModeSimulated},
		Analysis: config.AnalysisConfig{DefaultBufferMeters: 50, DefaultWindowDays: 90},
		Geocompute: config.GeocomputeConfig{
			TimeoutSecs: 5,
			RateLimit:   100,
			Concurrency: 4,
			MaxPixels:   1e9,
		},
	}
}

// useConfig installs c as the loaded config for the duration of the test.
func useConfig(t *testing.T, c config.Config) {
	t.Helper()
	prev := cfg
	cfg = &c
	t.Cleanup(func() { cfg = prev })
}

func statusServer(t *testing.T, ready bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"project":  "amakhet",
			"ready":    ready,
			"catalogs": []string{"COPERNICUS", "NASA", "OpenLandMap"},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInitProvider_Simulated(t *testing.T) {
	env, err := initProvider(context.Background(), testConfig(), false)
	require.NoError(t, err)
	assert.Equal(t, provider.VariantSimulated, env.Provider.Variant())
	assert.NotNil(t, env.Metrics)
	assert.NotNil(t, env.Registry)
}

func TestInitProvider_ForceSimulatedOverridesLive(t *testing.T) {
	c := testConfig()
	c.Provider.Mode = config.ModeLive

	env, err := initProvider(context.Background(), c, true)
	require.NoError(t, err)
	assert.Equal(t, provider.VariantSimulated, env.Provider.Variant())
}

func TestInitProvider_Live(t *testing.T) {
	c := testConfig()
	c.Provider.Mode = config.ModeLive
	c.Geocompute.BaseURL = statusServer(t, true).URL

	env, err := initProvider(context.Background(), c, false)
	require.NoError(t, err)
	assert.Equal(t, provider.VariantLive, env.Provider.Variant())
}

func TestInitProvider_LiveNotReady(t *testing.T) {
	c := testConfig()
	c.Provider.Mode = config.ModeLive
	c.Geocompute.BaseURL = statusServer(t, false).URL

	_, err := initProvider(context.Background(), c, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
}

func TestInitProvider_LiveUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := testConfig()
	c.Provider.Mode = config.ModeLive
	c.Geocompute.BaseURL = url

	_, err := initProvider(context.Background(), c, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init live provider")
}

func TestInitProvider_InvalidConfig(t *testing.T) {
	c := testConfig()
	c.Provider.Mode = "satellite"

	_, err := initProvider(context.Background(), c, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider.mode")
}

func TestNewHandler(t *testing.T) {
	useConfig(t, testConfig())
	env, err := initProvider(context.Background(), *cfg, false)
	require.NoError(t, err)
	h := newHandler(env)

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("analysis", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/soil-analysis/19.076/72.8777", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, true, resp["success"])
	})

	t.Run("metrics include runtime collectors", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "go_goroutines")
		assert.Contains(t, rr.Body.String(), "soil_analyses_total")
	})

	t.Run("configured origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}
