package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/amakhet/soil-api/internal/config"
	"github.com/amakhet/soil-api/internal/metrics"
	"github.com/amakhet/soil-api/internal/provider"
	"github.com/amakhet/soil-api/pkg/geocompute"
)

// providerEnv holds the provider and metrics needed by the serve and analyze
// commands.
type providerEnv struct {
	Provider provider.Provider
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
}

// initProvider validates c and builds the configured provider. forceSimulated
// overrides provider.mode. Live mode connects to the compute service before
// returning, so an unreachable service fails startup.
func initProvider(ctx context.Context, c config.Config, forceSimulated bool) (*providerEnv, error) {
	if forceSimulated {
		c.Provider.Mode = config.ModeSimulated
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	env := &providerEnv{
		Metrics:  metrics.New(reg),
		Registry: reg,
	}

	if c.Provider.Mode == config.ModeSimulated {
		env.Provider = provider.NewSimulated()
		zap.L().Info("using simulated soil data")
		return env, nil
	}

	client := geocompute.NewClient(
		geocompute.WithBaseURL(c.Geocompute.BaseURL),
		geocompute.WithToken(c.Geocompute.Token),
		geocompute.WithProject(c.Geocompute.Project),
		geocompute.WithTimeout(c.Geocompute.Timeout()),
		geocompute.WithRateLimit(c.Geocompute.RateLimit),
	)
	sess, err := geocompute.Connect(ctx, client)
	if err != nil {
		return nil, eris.Wrap(err, "init live provider")
	}

	st := sess.Status()
	zap.L().Info("geocompute session ready",
		zap.String("base_url", c.Geocompute.BaseURL),
		zap.String("project", st.Project),
		zap.Strings("catalogs", st.Catalogs),
	)

	env.Provider = provider.NewLive(sess,
		provider.WithConcurrency(c.Geocompute.Concurrency),
		provider.WithMaxPixels(c.Geocompute.MaxPixels),
		provider.WithMetrics(env.Metrics),
	)
	return env, nil
}
