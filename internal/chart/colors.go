package chart

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
)

// Scheme is a named dashboard color palette.
type Scheme struct {
	Primary    drawing.Color
	Secondary  drawing.Color
	Success    drawing.Color
	Warning    drawing.Color
	Danger     drawing.Color
	Background drawing.Color
}

// DefaultScheme is used when a requested scheme name is unknown.
const DefaultScheme = "Blue Tones"

// Schemes holds the selectable color palettes.
var Schemes = map[string]Scheme{
	"Blue Tones": {
		Primary:    drawing.ColorFromHex("1f77b4"),
		Secondary:  drawing.ColorFromHex("aec7e8"),
		Success:    drawing.ColorFromHex("2ca02c"),
		Warning:    drawing.ColorFromHex("ff7f0e"),
		Danger:     drawing.ColorFromHex("d62728"),
		Background: drawing.ColorFromHex("f8f9fa"),
	},
	"Ocean": {
		Primary:    drawing.ColorFromHex("006994"),
		Secondary:  drawing.ColorFromHex("4FC3F7"),
		Success:    drawing.ColorFromHex("00897B"),
		Warning:    drawing.ColorFromHex("FFA726"),
		Danger:     drawing.ColorFromHex("E53935"),
		Background: drawing.ColorFromHex("E0F7FA"),
	},
	"Sunset": {
		Primary:    drawing.ColorFromHex("FF6B6B"),
		Secondary:  drawing.ColorFromHex("FFB347"),
		Success:    drawing.ColorFromHex("4ECDC4"),
		Warning:    drawing.ColorFromHex("FFD93D"),
		Danger:     drawing.ColorFromHex("C0392B"),
		Background: drawing.ColorFromHex("FFF5E6"),
	},
	"Forest": {
		Primary:    drawing.ColorFromHex("2E7D32"),
		Secondary:  drawing.ColorFromHex("66BB6A"),
		Success:    drawing.ColorFromHex("1B5E20"),
		Warning:    drawing.ColorFromHex("F57C00"),
		Danger:     drawing.ColorFromHex("C62828"),
		Background: drawing.ColorFromHex("E8F5E9"),
	},
	"Purple Dream": {
		Primary:    drawing.ColorFromHex("7B1FA2"),
		Secondary:  drawing.ColorFromHex("BA68C8"),
		Success:    drawing.ColorFromHex("00897B"),
		Warning:    drawing.ColorFromHex("FFA726"),
		Danger:     drawing.ColorFromHex("E53935"),
		Background: drawing.ColorFromHex("F3E5F5"),
	},
	"Monochrome": {
		Primary:    drawing.ColorFromHex("424242"),
		Secondary:  drawing.ColorFromHex("9E9E9E"),
		Success:    drawing.ColorFromHex("616161"),
		Warning:    drawing.ColorFromHex("757575"),
		Danger:     drawing.ColorFromHex("212121"),
		Background: drawing.ColorFromHex("FAFAFA"),
	},
}

var (
	achievedColor   = drawing.ColorFromHex("00CC66")
	notStartedColor = drawing.ColorFromHex("CCCCCC")
)

// SchemeByName returns the named scheme, falling back to the default.
func SchemeByName(name string) Scheme {
	if scheme, ok := Schemes[name]; ok {
		return scheme
	}
	return Schemes[DefaultScheme]
}

// StatusColor maps a KPI status to its chart color within a scheme. Achieved
// and Not Started use fixed colors across all schemes.
func StatusColor(status kpi.Status, scheme Scheme) drawing.Color {
	switch status {
	case kpi.StatusAchieved:
		return achievedColor
	case kpi.StatusOnTrack:
		return scheme.Primary
	case kpi.StatusAtRisk:
		return scheme.Warning
	case kpi.StatusDelayed:
		return scheme.Danger
	default:
		return notStartedColor
	}
}
