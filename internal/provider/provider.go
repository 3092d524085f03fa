// Package provider supplies the measurement set for a location, either from a
// remote geospatial compute service or from a seeded simulation.
package provider

import (
	"context"

	"github.com/amakhet/soil-api/internal/model"
	"github.com/amakhet/soil-api/pkg/geocompute"
)

// Variant names a provider implementation.
type Variant string

const (
	VariantLive      Variant = "live"
	VariantSimulated Variant = "simulated"
)

// Provider returns the measurements for one location.
type Provider interface {
	Measure(ctx context.Context, loc model.Location) (*model.Measurements, error)
	Variant() Variant
}

// Aggregator computes the area mean of one layer. A nil value means the
// region held no data.
type Aggregator interface {
	MeanOver(ctx context.Context, req geocompute.ReduceRequest) (*float64, error)
}
