package provider

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/amakhet/soil-api/internal/metrics"
	"github.com/amakhet/soil-api/internal/model"
	"github.com/amakhet/soil-api/pkg/geocompute"
)

// Live collects measurements through area-mean aggregations on a remote
// geospatial compute service.
type Live struct {
	agg         Aggregator
	concurrency int
	maxPixels   float64
	metrics     *metrics.Metrics
}

// LiveOption configures a Live provider.
type LiveOption func(*Live)

// WithConcurrency bounds the number of in-flight aggregations per request.
func WithConcurrency(n int) LiveOption {
	return func(l *Live) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithMaxPixels caps the pixels the remote service may read per aggregation.
func WithMaxPixels(n float64) LiveOption {
	return func(l *Live) {
		if n > 0 {
			l.maxPixels = n
		}
	}
}

// WithMetrics records per-layer query outcomes.
func WithMetrics(m *metrics.Metrics) LiveOption {
	return func(l *Live) {
		l.metrics = m
	}
}

// NewLive creates a live provider on top of agg.
func NewLive(agg Aggregator, opts ...LiveOption) *Live {
	l := &Live{
		agg:         agg,
		concurrency: 4,
		maxPixels:   1e9,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Variant implements Provider.
func (*Live) Variant() Variant { return VariantLive }

// plan lists every aggregation for one request in a fixed order.
type plan struct {
	ndvi, surface, rootzone query
	ph, carbon, water       []query
}

func (p plan) all() []query {
	qs := []query{p.ndvi, p.surface, p.rootzone}
	qs = append(qs, p.ph...)
	qs = append(qs, p.carbon...)
	return append(qs, p.water...)
}

func newPlan() plan {
	return plan{
		ndvi:     ndviQuery(),
		surface:  moistureQuery("sm_surface"),
		rootzone: moistureQuery("sm_rootzone"),
		ph:       phLayer.depthQueries(),
		carbon:   organicCarbonLayer.depthQueries(),
		water:    waterContentLayer.depthQueries(),
	}
}

// Measure implements Provider. Aggregations run concurrently; the first
// failure cancels the rest and fails the whole measurement.
func (l *Live) Measure(ctx context.Context, loc model.Location) (*model.Measurements, error) {
	poly, err := AreaOfInterest(loc.Latitude, loc.Longitude, loc.BufferMeters)
	if err != nil {
		return nil, err
	}
	region, err := encodeRegion(poly)
	if err != nil {
		return nil, err
	}

	queries := newPlan().all()
	for i := range queries {
		q := &queries[i].req
		q.Region = region
		q.MaxPixels = l.maxPixels
		// Static soil maps have no time axis.
		if q.Kind == geocompute.KindImageCollection {
			q.StartDate = loc.Window.StartDate()
			q.EndDate = loc.Window.EndDate()
		}
	}

	values := make([]*float64, len(queries))
	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(l.concurrency)
	for i, q := range queries {
		eg.Go(func() error {
			v, err := l.agg.MeanOver(gCtx, q.req)
			if err != nil && gCtx.Err() != nil {
				// Cut short by another failed aggregation or by the caller.
				l.metrics.ObserveLayerQuery(q.layer, gCtx.Err())
			} else {
				l.metrics.ObserveLayerQuery(q.layer, err)
			}
			if err != nil {
				return eris.Wrapf(err, "aggregate %s", q.layer)
			}
			values[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	m := assemble(values)
	zap.L().Debug("live measurements collected",
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lon", loc.Longitude),
		zap.Int("queries", len(queries)),
		zap.Float64("ndvi", m.NDVI),
		zap.Float64("ph", m.PH),
	)
	return m, nil
}

// assemble maps values, ordered as plan.all, onto the measurement set.
// Missing aggregates count as zero.
func assemble(values []*float64) *model.Measurements {
	n := len(topsoilBands)
	ph := values[3 : 3+n]
	carbon := values[3+n : 3+2*n]
	water := values[3+2*n : 3+3*n]

	carbonGPerKg := organicCarbonLayer.profileMean(carbon)
	return &model.Measurements{
		NDVI:                    valueOrZero(values[0]),
		SurfaceMoisture:         valueOrZero(values[1]),
		RootzoneMoisture:        valueOrZero(values[2]),
		PH:                      phLayer.profileMean(ph),
		OrganicCarbonGPerKg:     carbonGPerKg,
		OrganicCarbonPct:        carbonGPerKg / 10,
		WaterHoldingCapacityPct: waterContentLayer.profileMean(water),
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
