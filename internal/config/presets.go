package config

import (
	"slices"

	"github.com/san-kum/arrayviz/internal/array"
)

// Presets are named starting arrays for demos and tests.
var Presets = map[string]array.Array{
	"sorted":     {1, 2, 3, 4, 5, 6, 7, 8},
	"reversed":   {8, 7, 6, 5, 4, 3, 2, 1},
	"duplicates": {5, 3, 5, 1, 3, 5},
	"single":     {42},
	"scenario":   {5, 3, 8, 1},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) array.Array {
	a, ok := Presets[name]
	if !ok {
		return nil
	}
	return a.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
