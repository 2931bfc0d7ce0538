package vin

import "strings"

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// formatEngineDescription synthesizes a short engine label like
// "3.5L V6" from the displacement, configuration and cylinder-count
// attributes, falling back to the raw engine model string.
func formatEngineDescription(displacementL, engineConfig, cylinders, fallbackModel string) string {
	disp := strings.TrimSpace(displacementL)

	cfg := strings.ToLower(engineConfig)
	var layout string
	switch {
	case strings.Contains(cfg, "v"):
		layout = "V"
	case strings.Contains(cfg, "inline"), strings.Contains(cfg, "in-line"),
		strings.Contains(cfg, "straight"), cfg == "i":
		layout = "I"
	case strings.Contains(cfg, "flat"), strings.Contains(cfg, "h"),
		strings.Contains(cfg, "opposed"), strings.Contains(cfg, "boxer"):
		layout = "H"
	}

	cyl := digitsOnly(cylinders)

	if disp != "" && layout != "" && cyl != "" {
		return disp + "L " + layout + cyl
	}
	if disp != "" && cyl != "" {
		return disp + "L " + cyl + "-cyl"
	}
	if fallbackModel != "" {
		return fallbackModel
	}
	return ""
}
