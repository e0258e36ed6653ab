package doc

import "github.com/lucasb-eyer/go-colorful"

// Style holds the visual attributes shared by all shape kinds.
type Style struct {
	// Stroke is the outline color as a hex string.
	Stroke string `json:"stroke"`

	// Fill is the interior color as a hex string, empty for no fill.
	Fill string `json:"fill,omitempty"`

	// StrokeWidth is the outline width in world units.
	StrokeWidth float64 `json:"strokeWidth"`
}

// DefaultStyle returns the style applied to newly created shapes.
func DefaultStyle() Style {
	return Style{
		Stroke:      "#1d1d1d",
		StrokeWidth: 2,
	}
}

// NormalizeColor parses s as a hex color and returns it in canonical
// lowercase #rrggbb form. Unparseable input yields the fallback.
func NormalizeColor(s, fallback string) string {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c.Hex()
}

// Normalized returns the style with both colors in canonical form and a
// positive stroke width.
func (s Style) Normalized() Style {
	def := DefaultStyle()
	s.Stroke = NormalizeColor(s.Stroke, def.Stroke)
	if s.Fill != "" {
		s.Fill = NormalizeColor(s.Fill, "")
	}
	if s.StrokeWidth <= 0 {
		s.StrokeWidth = def.StrokeWidth
	}
	return s
}
