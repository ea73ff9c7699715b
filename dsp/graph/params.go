package graph

import "math"

// Params holds the parsed parameters for a single chain node.
type Params struct {
	Kind string
	Num  map[string]float64
	Str  map[string]string
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

// HasNum reports whether key was given as a finite number.
func (p Params) HasNum(key string) bool {
	v, ok := p.Num[key]
	return ok && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// GetStr extracts a string parameter, returning def if missing.
func (p Params) GetStr(key, def string) string {
	if v, ok := p.Str[key]; ok {
		return v
	}
	return def
}
