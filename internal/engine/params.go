package engine

import (
	"strconv"

	"morphcloud/internal/core"
)

// HUD-adjustable ranges. Counts below ~500 render text illegibly and counts
// far above 50000 risk missing the frame budget in the O(N) tick loop.
const (
	countMin  = 500
	countMax  = 50000
	countStep = 500

	pointSizeMin  = 0.5
	pointSizeMax  = 8.0
	pointSizeStep = 0.5

	morphSpeedMin  = 0.25
	morphSpeedMax  = 6.0
	morphSpeedStep = 0.25

	falloffMin  = 5.0
	falloffMax  = 100.0
	falloffStep = 5.0
)

// Parameters reports the current tunables for the HUD panel and probes.
func (e *Engine) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Cloud",
			Params: []core.Parameter{
				intParam("particle_count", "Particles", e.count),
				floatParam("point_size", "Point size", e.cfg.PointSize),
				floatParam("radius", "Sphere radius", e.cfg.Radius),
				int64Param("seed", "Seed", e.cfg.Seed),
			},
		},
		{
			Name: "Morph",
			Params: []core.Parameter{
				floatParam("morph_speed", "Morph speed", e.cfg.MorphSpeed),
				floatParam("progress", "Progress", e.progress),
			},
		},
		{
			Name: "Light",
			Params: []core.Parameter{
				floatParam("light_falloff", "Light falloff", e.cfg.LightFalloff),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the parameters the HUD may adjust, with steps and
// bounds.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key: "particle_count", Label: "Particles", Type: core.ParamTypeInt,
			Step: countStep, Min: countMin, Max: countMax, HasMin: true, HasMax: true,
		},
		{
			Key: "point_size", Label: "Point size", Type: core.ParamTypeFloat,
			Step: pointSizeStep, Min: pointSizeMin, Max: pointSizeMax, HasMin: true, HasMax: true,
		},
		{
			Key: "morph_speed", Label: "Morph speed", Type: core.ParamTypeFloat,
			Step: morphSpeedStep, Min: morphSpeedMin, Max: morphSpeedMax, HasMin: true, HasMax: true,
		},
		{
			Key: "light_falloff", Label: "Light falloff", Type: core.ParamTypeFloat,
			Step: falloffStep, Min: falloffMin, Max: falloffMax, HasMin: true, HasMax: true,
		},
	}
}

// SetIntParameter adjusts an integer tunable, clamping to its documented
// range. It reports whether the key was recognized and applied.
func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case "particle_count":
		value = clampInt(value, countMin, countMax)
		if err := e.Configure(value); err != nil {
			return false
		}
		return true
	default:
		return false
	}
}

// SetFloatParameter adjusts a float tunable, clamping to its documented
// range. It reports whether the key was recognized and applied.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "point_size":
		e.cfg.PointSize = clampFloat(value, pointSizeMin, pointSizeMax)
		return true
	case "morph_speed":
		e.cfg.MorphSpeed = clampFloat(value, morphSpeedMin, morphSpeedMax)
		return true
	case "light_falloff":
		e.cfg.LightFalloff = clampFloat(value, falloffMin, falloffMax)
		return true
	default:
		return false
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
