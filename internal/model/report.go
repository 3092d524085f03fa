package model

// HealthStatus is the soil health classification label.
type HealthStatus string

const (
	StatusHealthy HealthStatus = "healthy"
	StatusWarning HealthStatus = "warning"
)

// Measurements holds the seven scalar values sampled for a location.
type Measurements struct {
	NDVI                    float64
	SurfaceMoisture         float64 // m3/m3
	RootzoneMoisture        float64 // m3/m3
	PH                      float64
	OrganicCarbonPct        float64
	OrganicCarbonGPerKg     float64
	WaterHoldingCapacityPct float64 // volumetric water content at 33 kPa
}

// SoilData is the JSON view of the soil measurements.
type SoilData struct {
	PH                   float64 `json:"ph"`
	OrganicCarbon        float64 `json:"organicCarbon"`
	OrganicCarbonGPerKg  float64 `json:"organicCarbonGPerKg"`
	WaterHoldingCapacity float64 `json:"waterHoldingCapacity"`
	SurfaceMoisture      float64 `json:"surfaceMoisture"`
	RootzoneMoisture     float64 `json:"rootzoneMoisture"`
}

// Report is the soil health report for one location.
type Report struct {
	Status               HealthStatus `json:"status"`
	NDVI                 float64      `json:"ndvi"`
	HealthPercentage     int          `json:"healthPercentage"`
	StressAreaPercentage int          `json:"stressAreas"`
	SoilData             SoilData     `json:"soilData"`
	Recommendations      []string     `json:"recommendations"`
	Message              string       `json:"message"`
}

// SoilDataFrom converts a measurement set to its JSON view.
func SoilDataFrom(m Measurements) SoilData {
	return SoilData{
		PH:                   m.PH,
		OrganicCarbon:        m.OrganicCarbonPct,
		OrganicCarbonGPerKg:  m.OrganicCarbonGPerKg,
		WaterHoldingCapacity: m.WaterHoldingCapacityPct,
		SurfaceMoisture:      m.SurfaceMoisture,
		RootzoneMoisture:     m.RootzoneMoisture,
	}
}
