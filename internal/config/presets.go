package config

import "sort"

var Presets = map[string]*Config{
	"default": {Depth: 50, Width: 50, Steps: 500, FPS: 10},
	"small":   {Depth: 20, Width: 20, Steps: 200, FPS: 8},
	"large":   {Depth: 120, Width: 160, Steps: 1000, FPS: 15},
	"long":    {Depth: 80, Width: 100, Steps: 4000, FPS: 30},
	"strip":   {Depth: 6, Width: 150, Steps: 500, FPS: 10},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
