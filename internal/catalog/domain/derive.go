package domain

import (
	"math"
	"sort"
)

// Risk bands for a 0-100 risk score, where higher is riskier.
const (
	BandSafe     = "Safe"
	BandLow      = "Low"
	BandHigh     = "High"
	BandCritical = "Critical"
)

// Report condition levels, where a higher score is better.
const (
	LevelGood     = "Good"
	LevelFair     = "Fair"
	LevelPoor     = "Poor"
	LevelCritical = "Critical"
)

// BuilderHighRiskThreshold is the number of high-risk projects above which a
// builder is highlighted.
const BuilderHighRiskThreshold = 10

// HighRiskPercent returns highRisk/inspections as a percentage rounded to
// one decimal. Zero inspections yields 0.
func HighRiskPercent(c City) float64 {
	if c.Inspections <= 0 {
		return 0
	}
	pct := float64(c.HighRisk) / float64(c.Inspections) * 100
	return math.Round(pct*10) / 10
}

// RiskBand labels a risk score.
func RiskBand(score int) string {
	switch {
	case score < 20:
		return BandSafe
	case score < 50:
		return BandLow
	case score < 75:
		return BandHigh
	default:
		return BandCritical
	}
}

// ReportLevel labels a report condition score.
func ReportLevel(score int) string {
	switch {
	case score >= 80:
		return LevelGood
	case score >= 60:
		return LevelFair
	case score >= 40:
		return LevelPoor
	default:
		return LevelCritical
	}
}

// ReportColor is the gauge colour of a report condition score.
func ReportColor(score int) string {
	switch {
	case score >= 80:
		return "#4CAF50"
	case score >= 60:
		return "#FFC107"
	case score >= 40:
		return "#FF9800"
	default:
		return "#F44336"
	}
}

func BuilderFlagged(b Builder) bool {
	return b.HighRisk > BuilderHighRiskThreshold
}

// TrendDirection is "up" for a positive change, "down" for negative and
// "flat" otherwise.
func TrendDirection(change float64) string {
	switch {
	case change > 0:
		return "up"
	case change < 0:
		return "down"
	default:
		return "flat"
	}
}

// FindCity returns the named city, falling back to the first one. ok is
// false when the fallback was used.
func FindCity(cities []City, name string) (City, bool) {
	for _, c := range cities {
		if c.Name == name {
			return c, true
		}
	}
	if len(cities) == 0 {
		return City{}, false
	}
	return cities[0], false
}

// ByInspections returns a copy of cities ordered by inspection count,
// highest first.
func ByInspections(cities []City) []City {
	out := append([]City(nil), cities...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Inspections > out[j].Inspections })
	return out
}
