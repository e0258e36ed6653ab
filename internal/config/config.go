package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/tools"
)

// EditorConfig holds the interaction tunables.
type EditorConfig struct {
	HitTolerance       float64 `json:"hitTolerance"`
	HandleRadius       float64 `json:"handleRadius"`
	SegmentTolerance   float64 `json:"segmentTolerance"`
	MinShapeSize       float64 `json:"minShapeSize"`
	MaxCoordinate      float64 `json:"maxCoordinate"`
	RotateHandleOffset float64 `json:"rotateHandleOffset"`
	HistoryLimit       int     `json:"historyLimit"`
}

// StyleConfig holds the default shape style.
type StyleConfig struct {
	Stroke      string  `json:"stroke"`
	Fill        string  `json:"fill"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Config is the full settings file.
type Config struct {
	Editor EditorConfig `json:"editor"`
	Style  StyleConfig  `json:"style"`
}

// Default returns the built-in settings.
func Default() Config {
	p := tools.DefaultParams()
	s := doc.DefaultStyle()
	return Config{
		Editor: EditorConfig{
			HitTolerance:       p.HitTolerance,
			HandleRadius:       p.HandleRadius,
			SegmentTolerance:   p.SegmentTolerance,
			MinShapeSize:       p.MinShapeSize,
			MaxCoordinate:      p.MaxCoordinate,
			RotateHandleOffset: p.RotateHandleOffset,
			HistoryLimit:       100,
		},
		Style: StyleConfig{
			Stroke:      s.Stroke,
			Fill:        s.Fill,
			StrokeWidth: s.StrokeWidth,
		},
	}
}

// Load reads the settings file at path. A missing file yields the
// defaults; missing fields fall back per field. Invalid JSON returns
// ErrInvalidConfig.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes settings from raw JSON, filling absent fields with their
// defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	if !gjson.ValidBytes(data) {
		return cfg, fmt.Errorf("parse config: %w", ErrInvalidConfig)
	}

	loadFloat(data, "editor.hitTolerance", &cfg.Editor.HitTolerance)
	loadFloat(data, "editor.handleRadius", &cfg.Editor.HandleRadius)
	loadFloat(data, "editor.segmentTolerance", &cfg.Editor.SegmentTolerance)
	loadFloat(data, "editor.minShapeSize", &cfg.Editor.MinShapeSize)
	loadFloat(data, "editor.maxCoordinate", &cfg.Editor.MaxCoordinate)
	loadFloat(data, "editor.rotateHandleOffset", &cfg.Editor.RotateHandleOffset)
	if v := gjson.GetBytes(data, "editor.historyLimit"); v.Exists() {
		cfg.Editor.HistoryLimit = int(v.Int())
	}

	loadString(data, "style.stroke", &cfg.Style.Stroke)
	loadString(data, "style.fill", &cfg.Style.Fill)
	loadFloat(data, "style.strokeWidth", &cfg.Style.StrokeWidth)

	return cfg, nil
}

func loadFloat(data []byte, path string, dst *float64) {
	if v := gjson.GetBytes(data, path); v.Exists() {
		*dst = v.Float()
	}
}

func loadString(data []byte, path string, dst *string) {
	if v := gjson.GetBytes(data, path); v.Exists() {
		*dst = v.String()
	}
}

// Save writes the settings to path, creating parent directories.
func (c Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Encode renders the settings as JSON.
func (c Config) Encode() ([]byte, error) {
	out := []byte("{}")
	set := func(path string, value any) error {
		var err error
		out, err = sjson.SetBytes(out, path, value)
		return err
	}
	fields := []struct {
		path  string
		value any
	}{
		{"editor.hitTolerance", c.Editor.HitTolerance},
		{"editor.handleRadius", c.Editor.HandleRadius},
		{"editor.segmentTolerance", c.Editor.SegmentTolerance},
		{"editor.minShapeSize", c.Editor.MinShapeSize},
		{"editor.maxCoordinate", c.Editor.MaxCoordinate},
		{"editor.rotateHandleOffset", c.Editor.RotateHandleOffset},
		{"editor.historyLimit", c.Editor.HistoryLimit},
		{"style.stroke", c.Style.Stroke},
		{"style.fill", c.Style.Fill},
		{"style.strokeWidth", c.Style.StrokeWidth},
	}
	for _, f := range fields {
		if err := set(f.path, f.value); err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
	}
	return out, nil
}

// Params converts the editor section to tool parameters.
func (c Config) Params() tools.Params {
	return tools.Params{
		HitTolerance:       c.Editor.HitTolerance,
		HandleRadius:       c.Editor.HandleRadius,
		SegmentTolerance:   c.Editor.SegmentTolerance,
		MinShapeSize:       c.Editor.MinShapeSize,
		MaxCoordinate:      c.Editor.MaxCoordinate,
		RotateHandleOffset: c.Editor.RotateHandleOffset,
	}
}

// DefaultStyle converts the style section to a normalized shape style.
func (c Config) DefaultStyle() doc.Style {
	return doc.Style{
		Stroke:      c.Style.Stroke,
		Fill:        c.Style.Fill,
		StrokeWidth: c.Style.StrokeWidth,
	}.Normalized()
}
