package effectchain

import "math"

// Params holds the named parameters of a single chain node as they appear
// in a patch.
type Params struct {
	ID   string
	Type string
	Num  map[string]float64
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// Vector lays the named values out in names order. Missing entries keep
// the value from current.
func (p Params) Vector(names []string, current []float64) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		def := math.NaN()
		if i < len(current) {
			def = current[i]
		}

		out[i] = p.GetNum(name, def)
	}

	return out
}

// namedParams maps a vector to its names.
func namedParams(names []string, values []float64) map[string]float64 {
	m := make(map[string]float64, len(names))
	for i, name := range names {
		if i < len(values) {
			m[name] = values[i]
		}
	}

	return m
}
