package soil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amakhet/soil-api/internal/model"
)

func healthy() model.Measurements {
	return model.Measurements{
		NDVI:                    0.62,
		SurfaceMoisture:         0.21,
		RootzoneMoisture:        0.27,
		PH:                      6.8,
		OrganicCarbonPct:        2.5,
		OrganicCarbonGPerKg:     25,
		WaterHoldingCapacityPct: 35,
	}
}

func TestClassify_HealthyRange(t *testing.T) {
	for _, ph := range []float64{6.0, 6.5, 7.0, 7.5} {
		for _, oc := range []float64{2.0, 3.1, 5.0} {
			for _, whc := range []float64{30, 40, 50} {
				m := healthy()
				m.PH, m.OrganicCarbonPct, m.WaterHoldingCapacityPct = ph, oc, whc

				r := Classify(m)

				assert.Equal(t, model.StatusHealthy, r.Status, "ph=%v oc=%v whc=%v", ph, oc, whc)
				assert.Equal(t, 90, r.HealthPercentage)
				assert.Equal(t, 10, r.StressAreaPercentage)
				assert.Equal(t, []string{RecContinue, RecMonitor}, r.Recommendations)
			}
		}
	}
}

// Organic carbon between 1.0 and 2.0 leaves the status healthy but still
// produces the organic matter recommendation.
func TestClassify_HealthyWithCarbonAdvice(t *testing.T) {
	m := healthy()
	m.OrganicCarbonPct = 1.5

	r := Classify(m)

	assert.Equal(t, model.StatusHealthy, r.Status)
	assert.Equal(t, 90, r.HealthPercentage)
	assert.Equal(t, 10, r.StressAreaPercentage)
	assert.Equal(t, []string{RecOrganicMatter}, r.Recommendations)
}

func TestClassify_SevereAcid(t *testing.T) {
	m := healthy()
	m.PH = 5.0

	r := Classify(m)

	assert.Equal(t, model.StatusWarning, r.Status)
	assert.LessOrEqual(t, r.HealthPercentage, 70)
	assert.GreaterOrEqual(t, r.StressAreaPercentage, 25)
	assert.Contains(t, r.Recommendations, RecRaisePH)
	assert.NotContains(t, r.Recommendations, RecLowerPH)
}

func TestEvaluate_RuleComposition(t *testing.T) {
	tests := []struct {
		name       string
		ph         float64
		oc         float64
		whc        float64
		status     model.HealthStatus
		percentage int
		stress     int
		fired      []string
	}{
		{
			name:       "nothing fires",
			ph:         7.0,
			oc:         3,
			whc:        40,
			status:     model.StatusHealthy,
			percentage: 90,
			stress:     10,
		},
		{
			name:       "moderate alkaline only",
			ph:         7.9,
			oc:         3,
			whc:        40,
			status:     model.StatusWarning,
			percentage: 80,
			stress:     20,
			fired:      []string{"ph"},
		},
		{
			name:       "moderate acid only",
			ph:         5.7,
			oc:         3,
			whc:        40,
			status:     model.StatusWarning,
			percentage: 80,
			stress:     20,
			fired:      []string{"ph"},
		},
		{
			name:       "severe alkaline only",
			ph:         8.2,
			oc:         3,
			whc:        40,
			status:     model.StatusWarning,
			percentage: 70,
			stress:     25,
			fired:      []string{"ph"},
		},
		{
			name:       "all three, moderate pH",
			ph:         7.9,
			oc:         0.5,
			whc:        20,
			status:     model.StatusWarning,
			percentage: 75,
			stress:     30,
			fired:      []string{"ph", "organic_carbon", "water_holding_capacity"},
		},
		{
			name:       "all three, severe pH",
			ph:         8.4,
			oc:         0.5,
			whc:        20,
			status:     model.StatusWarning,
			percentage: 70,
			stress:     30,
			fired:      []string{"ph", "organic_carbon", "water_holding_capacity"},
		},
		{
			name:       "water only",
			ph:         6.5,
			oc:         3,
			whc:        29.9,
			status:     model.StatusWarning,
			percentage: 80,
			stress:     25,
			fired:      []string{"water_holding_capacity"},
		},
		{
			name:       "severe pH keeps cap below later rules",
			ph:         5.4,
			oc:         3,
			whc:        25,
			status:     model.StatusWarning,
			percentage: 70,
			stress:     25,
			fired:      []string{"ph", "water_holding_capacity"},
		},
		{
			name:       "boundaries are inclusive of the optimal range",
			ph:         8.0,
			oc:         1.0,
			whc:        30,
			status:     model.StatusWarning,
			percentage: 80,
			stress:     20,
			fired:      []string{"ph"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := healthy()
			m.PH, m.OrganicCarbonPct, m.WaterHoldingCapacityPct = tt.ph, tt.oc, tt.whc

			s := Evaluate(m)

			assert.Equal(t, tt.status, s.Status)
			assert.Equal(t, tt.percentage, s.HealthPercentage)
			assert.Equal(t, tt.stress, s.StressAreaPercentage)
			assert.Equal(t, tt.fired, s.Fired)
		})
	}
}

// Reordering the rules must not change the outcome.
func TestEvaluate_OrderIndependent(t *testing.T) {
	orig := rules
	t.Cleanup(func() { rules = orig })

	m := healthy()
	m.PH, m.OrganicCarbonPct, m.WaterHoldingCapacityPct = 7.9, 0.5, 20
	want := Evaluate(m)

	rules = []rule{orig[2], orig[0], orig[1]}
	got := Evaluate(m)

	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.HealthPercentage, got.HealthPercentage)
	assert.Equal(t, want.StressAreaPercentage, got.StressAreaPercentage)
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name string
		ph   float64
		oc   float64
		whc  float64
		want []string
	}{
		{name: "defaults", ph: 7.0, oc: 2.0, whc: 30, want: []string{RecContinue, RecMonitor}},
		{name: "acid", ph: 5.9, oc: 2.5, whc: 35, want: []string{RecRaisePH}},
		{name: "alkaline", ph: 7.6, oc: 2.5, whc: 35, want: []string{RecLowerPH}},
		{name: "everything", ph: 5.0, oc: 0.4, whc: 10, want: []string{RecRaisePH, RecOrganicMatter, RecWaterRetention}},
		{name: "alkaline and dry", ph: 8.3, oc: 4, whc: 22, want: []string{RecLowerPH, RecWaterRetention}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := healthy()
			m.PH, m.OrganicCarbonPct, m.WaterHoldingCapacityPct = tt.ph, tt.oc, tt.whc
			assert.Equal(t, tt.want, Recommendations(m))
		})
	}
}

func TestSummary(t *testing.T) {
	m := healthy()
	m.PH, m.OrganicCarbonPct, m.WaterHoldingCapacityPct = 6.84, 1.26, 33.36

	got := Summary(model.StatusWarning, m)

	assert.Equal(t, "Your soil analysis shows warning conditions. pH: 6.8, Organic Carbon: 1.3%, Water Holding Capacity: 33.4%", got)
}

func TestClassify_CarriesMeasurements(t *testing.T) {
	m := healthy()

	r := Classify(m)

	assert.InDelta(t, m.NDVI, r.NDVI, 1e-9)
	assert.Equal(t, model.SoilDataFrom(m), r.SoilData)
	assert.Equal(t, Summary(r.Status, m), r.Message)
}
