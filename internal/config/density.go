package config

// DensityPreset represents a named obstacle density.
type DensityPreset string

const (
	DensitySparse DensityPreset = "sparse"
	DensityNormal DensityPreset = "normal"
	DensityDense  DensityPreset = "dense"
	DensityFixed  DensityPreset = "fixed"
)

// ProbabilityForPreset returns the obstacle probability for a preset.
// Fixed keeps whatever the configuration says and returns -1.
func ProbabilityForPreset(preset DensityPreset) float64 {
	switch preset {
	case DensitySparse:
		return 0.15
	case DensityNormal:
		return 0.3
	case DensityDense:
		return 0.45
	default:
		return -1
	}
}

// IsKnownPreset returns true for the presets above.
func IsKnownPreset(preset DensityPreset) bool {
	switch preset {
	case DensitySparse, DensityNormal, DensityDense, DensityFixed:
		return true
	}
	return false
}

// ApplyDensityPreset modifies the config based on a density preset.
func ApplyDensityPreset(cfg *Config, preset DensityPreset) {
	if p := ProbabilityForPreset(preset); p >= 0 {
		cfg.Grid.ObstacleProbability = p
	}
	// Dense boards fail more often; give the planner room to regenerate.
	if preset == DensityDense && cfg.Search.MaxAttempts < 3 {
		cfg.Search.MaxAttempts = 3
	}
}
