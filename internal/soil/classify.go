// Package soil scores a measurement set into a soil health report.
package soil

import (
	"fmt"

	"github.com/amakhet/soil-api/internal/model"
)

// Starting values before any rule fires.
const (
	baseHealthPercentage = 90
	baseStressArea       = 10
)

// Thresholds.
const (
	phSevereLow    = 5.5
	phSevereHigh   = 8.0
	phOptimalLow   = 6.0
	phOptimalHigh  = 7.5
	carbonCritical = 1.0 // %
	carbonTarget   = 2.0 // %
	waterRetention = 30.0
)

// Recommendation texts.
const (
	RecRaisePH        = "Consider adding lime to raise soil pH"
	RecLowerPH        = "Consider adding sulfur to lower soil pH"
	RecOrganicMatter  = "Add organic matter to improve soil fertility"
	RecWaterRetention = "Improve soil structure to enhance water retention"
	RecContinue       = "Continue current soil management practices"
	RecMonitor        = "Monitor soil health regularly"
)

// effect is what a fired rule contributes: the percentage may not exceed
// maxPercentage and the stressed area may not fall below minStress.
type effect struct {
	maxPercentage int
	minStress     int
}

// rule inspects the measurements and reports whether it fired.
type rule struct {
	name string
	eval func(m model.Measurements) (effect, bool)
}

// rules are folded in order; every effect only tightens the result.
var rules = []rule{
	{name: "ph", eval: phRule},
	{name: "organic_carbon", eval: organicCarbonRule},
	{name: "water_holding_capacity", eval: waterHoldingRule},
}

func phRule(m model.Measurements) (effect, bool) {
	switch {
	case m.PH < phSevereLow || m.PH > phSevereHigh:
		return effect{maxPercentage: 70, minStress: 25}, true
	case m.PH < phOptimalLow || m.PH > phOptimalHigh:
		return effect{maxPercentage: 80, minStress: 20}, true
	}
	return effect{}, false
}

func organicCarbonRule(m model.Measurements) (effect, bool) {
	if m.OrganicCarbonPct < carbonCritical {
		return effect{maxPercentage: 75, minStress: 30}, true
	}
	return effect{}, false
}

func waterHoldingRule(m model.Measurements) (effect, bool) {
	if m.WaterHoldingCapacityPct < waterRetention {
		return effect{maxPercentage: 80, minStress: 25}, true
	}
	return effect{}, false
}

// Score is the folded result of all rules.
type Score struct {
	Status               model.HealthStatus
	HealthPercentage     int
	StressAreaPercentage int
	Fired                []string
}

// Evaluate folds the rule list over m.
func Evaluate(m model.Measurements) Score {
	s := Score{
		Status:               model.StatusHealthy,
		HealthPercentage:     baseHealthPercentage,
		StressAreaPercentage: baseStressArea,
	}
	for _, r := range rules {
		e, ok := r.eval(m)
		if !ok {
			continue
		}
		s.Status = model.StatusWarning
		s.HealthPercentage = min(s.HealthPercentage, e.maxPercentage)
		s.StressAreaPercentage = max(s.StressAreaPercentage, e.minStress)
		s.Fired = append(s.Fired, r.name)
	}
	return s
}

// Recommendations returns the ordered advice list for m. It never returns an
// empty list.
func Recommendations(m model.Measurements) []string {
	var recs []string
	if m.PH < phOptimalLow {
		recs = append(recs, RecRaisePH)
	} else if m.PH > phOptimalHigh {
		recs = append(recs, RecLowerPH)
	}
	if m.OrganicCarbonPct < carbonTarget {
		recs = append(recs, RecOrganicMatter)
	}
	if m.WaterHoldingCapacityPct < waterRetention {
		recs = append(recs, RecWaterRetention)
	}
	if len(recs) == 0 {
		recs = []string{RecContinue, RecMonitor}
	}
	return recs
}

// Summary renders the one-line report message.
func Summary(status model.HealthStatus, m model.Measurements) string {
	return fmt.Sprintf("Your soil analysis shows %s conditions. pH: %.1f, Organic Carbon: %.1f%%, Water Holding Capacity: %.1f%%",
		status, m.PH, m.OrganicCarbonPct, m.WaterHoldingCapacityPct)
}

// Classify builds the full health report for m.
func Classify(m model.Measurements) model.Report {
	s := Evaluate(m)
	return model.Report{
		Status:               s.Status,
		NDVI:                 m.NDVI,
		HealthPercentage:     s.HealthPercentage,
		StressAreaPercentage: s.StressAreaPercentage,
		SoilData:             model.SoilDataFrom(m),
		Recommendations:      Recommendations(m),
		Message:              Summary(s.Status, m),
	}
}
