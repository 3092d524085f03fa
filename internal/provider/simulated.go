package provider

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/amakhet/soil-api/internal/model"
)

// span is a uniform draw range [lo, lo+width).
type span struct {
	lo    float64
	width float64
}

func (s span) draw(r *rand.Rand) float64 { return s.lo + r.Float64()*s.width }

// Typical ranges for agricultural soils.
var (
	ndviSpan     = span{0.3, 0.6}
	phSpan       = span{5.5, 3.0}
	carbonSpan   = span{1.0, 4.0}  // %
	waterSpan    = span{25.0, 25.0} // % at 33 kPa
	surfaceSpan  = span{0.1, 0.3}
	rootzoneSpan = span{0.15, 0.25}
)

// Simulated derives measurements from a generator seeded on the coordinate.
// It never contacts the network and never fails.
type Simulated struct{}

// NewSimulated creates the simulated provider.
func NewSimulated() *Simulated { return &Simulated{} }

// Variant implements Provider.
func (*Simulated) Variant() Variant { return VariantSimulated }

// Measure implements Provider. Buffer and window do not influence the values.
func (*Simulated) Measure(_ context.Context, loc model.Location) (*model.Measurements, error) {
	seed := Seed(loc.Latitude, loc.Longitude)
	r := rand.New(rand.NewPCG(uint64(seed), 0))

	ndvi := ndviSpan.draw(r)
	ph := phSpan.draw(r)
	carbon := carbonSpan.draw(r)
	water := waterSpan.draw(r)
	surface := surfaceSpan.draw(r)
	rootzone := rootzoneSpan.draw(r)

	return &model.Measurements{
		NDVI:                    ndvi,
		SurfaceMoisture:         surface,
		RootzoneMoisture:        rootzone,
		PH:                      ph,
		OrganicCarbonPct:        carbon,
		OrganicCarbonGPerKg:     carbon * 10,
		WaterHoldingCapacityPct: water,
	}, nil
}

// Seed is the generator seed for a coordinate.
func Seed(lat, lon float64) int64 {
	return int64(math.Floor(lat*1000)) + int64(math.Floor(lon*1000))
}
