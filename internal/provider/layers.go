package provider

import "github.com/amakhet/soil-api/pkg/geocompute"

// Datasets.
const (
	sentinel2Dataset     = "COPERNICUS/S2_SR_HARMONIZED"
	smapDataset          = "NASA/SMAP/SPL4SMGP/007"
	phDataset            = "OpenLandMap/SOL/SOL_PH-H2O_USDA-4C1A2A_M/v02"
	organicCarbonDataset = "OpenLandMap/SOL/SOL_ORGANIC-CARBON_USDA-6A1C_M/v02"
	waterContentDataset  = "OpenLandMap/SOL/SOL_WATERCONTENT-33KPA_USDA-4B1C_M/v01"
)

// Sampling resolutions in meters.
const (
	imageryScale  = 10
	moistureScale = 10000
	soilMapScale  = 250
)

// Sentinel-2 scene classes removed before compositing: cloud shadow, medium
// and high probability cloud, thin cirrus.
var cloudClasses = []int{3, 8, 9, 10}

// DepthBand is one sampled soil depth and its weight in the profile mean.
type DepthBand struct {
	Band   string
	Weight float64
}

// topsoilBands cover the surface, 10 cm and 30 cm layers.
var topsoilBands = []DepthBand{
	{Band: "b0", Weight: 1},
	{Band: "b10", Weight: 1},
	{Band: "b30", Weight: 1},
}

// soilLayer is a static soil property map. Raw values are scaled by
// multiplier to physical units.
type soilLayer struct {
	name       string
	dataset    string
	multiplier float64
}

var (
	phLayer            = soilLayer{name: "ph", dataset: phDataset, multiplier: 0.1}
	organicCarbonLayer = soilLayer{name: "organic_carbon", dataset: organicCarbonDataset, multiplier: 5.0}
	waterContentLayer  = soilLayer{name: "water_content_33kpa", dataset: waterContentDataset, multiplier: 1.0}
)

// query is one aggregation issued for a request.
type query struct {
	layer string
	req   geocompute.ReduceRequest
}

func ndviQuery() query {
	return query{
		layer: "ndvi",
		req: geocompute.ReduceRequest{
			Dataset:    sentinel2Dataset,
			Kind:       geocompute.KindImageCollection,
			Bands:      []string{"B8", "B4"},
			Composite:  geocompute.CompositeMedian,
			Expression: geocompute.ExprNormalizedDifference,
			CloudMask:  &geocompute.CloudMask{Band: "SCL", Exclude: cloudClasses},
			Scale:      imageryScale,
		},
	}
}

func moistureQuery(band string) query {
	return query{
		layer: band,
		req: geocompute.ReduceRequest{
			Dataset:   smapDataset,
			Kind:      geocompute.KindImageCollection,
			Bands:     []string{band},
			Composite: geocompute.CompositeMean,
			Scale:     moistureScale,
		},
	}
}

func (l soilLayer) depthQueries() []query {
	qs := make([]query, 0, len(topsoilBands))
	for _, d := range topsoilBands {
		qs = append(qs, query{
			layer: l.name + "_" + d.Band,
			req: geocompute.ReduceRequest{
				Dataset: l.dataset,
				Kind:    geocompute.KindImage,
				Bands:   []string{d.Band},
				Scale:   soilMapScale,
			},
		})
	}
	return qs
}

// profileMean is the weighted mean of the depth band values that are present,
// scaled to physical units. It returns 0 when no band has data.
func (l soilLayer) profileMean(values []*float64) float64 {
	var sum, weights float64
	for i, v := range values {
		if v == nil || i >= len(topsoilBands) {
			continue
		}
		w := topsoilBands[i].Weight
		sum += *v * w
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return sum / weights * l.multiplier
}
