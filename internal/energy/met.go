package energy

import "example.com/fittrack/internal/domain"

// DefaultWeightKG stands in for body weight when no profile has been saved.
const DefaultWeightKG = 70.0

// METTable holds metabolic-equivalent values keyed by sport identifier.
type METTable struct {
	// ByIntensity lists activities whose MET depends on the session intensity.
	ByIntensity map[string]map[domain.Intensity]float64
	// Continuous lists steady-effort activities with a single MET value.
	Continuous map[string]float64
	// Default is used for activities found in neither table.
	Default map[domain.Intensity]float64
}

// DefaultMETs is the built-in table for the seeded sports.
var DefaultMETs = METTable{
	ByIntensity: map[string]map[domain.Intensity]float64{
		domain.SportGym: {domain.IntensityLight: 3.5, domain.IntensityModerate: 5.0, domain.IntensityVigorous: 6.0},
		"volei_quadra":  {domain.IntensityLight: 3.0, domain.IntensityModerate: 6.0, domain.IntensityVigorous: 8.0},
		"volei_praia":   {domain.IntensityLight: 4.0, domain.IntensityModerate: 8.0, domain.IntensityVigorous: 8.0},
		"futebol":       {domain.IntensityLight: 5.0, domain.IntensityModerate: 8.0, domain.IntensityVigorous: 10.0},
		"boxe":          {domain.IntensityLight: 5.5, domain.IntensityModerate: 8.0, domain.IntensityVigorous: 10.0},
	},
	Continuous: map[string]float64{
		"caminhada": 3.5,
		"ciclismo":  7.5,
		"corrida":   9.8,
		"natacao":   8.0,
	},
	Default: map[domain.Intensity]float64{
		domain.IntensityLight:    3.0,
		domain.IntensityModerate: 4.5,
		domain.IntensityVigorous: 7.0,
	},
}

// MET resolves the value for an activity. continuous reports whether the
// activity uses the steady-effort formula. An empty or unknown intensity is
// read as moderate.
func (t METTable) MET(activityID string, intensity domain.Intensity) (met float64, continuous bool) {
	if !intensity.Valid() {
		intensity = domain.IntensityModerate
	}
	if byIntensity, ok := t.ByIntensity[activityID]; ok {
		if met, ok := byIntensity[intensity]; ok {
			return met, false
		}
	}
	if met, ok := t.Continuous[activityID]; ok {
		return met, true
	}
	return t.Default[intensity], false
}

// Calories estimates the energy cost of a session in kcal. Intensity-graded
// activities use (MET × kg × 3.5 / 200) × minutes; steady-effort activities
// use MET × kg × hours. Non-positive weight falls back to DefaultWeightKG.
func (t METTable) Calories(activityID string, intensity domain.Intensity, weightKG, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	if weightKG <= 0 {
		weightKG = DefaultWeightKG
	}
	met, continuous := t.MET(activityID, intensity)
	if continuous {
		return met * weightKG * minutes / 60
	}
	return met * weightKG * 3.5 / 200 * minutes
}
