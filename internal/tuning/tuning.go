package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"orthoview.app/internal/mesh"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	DefaultResolution int     `yaml:"default_resolution"`
	MaxResolution     int     `yaml:"max_resolution"`
	UnitSize          float32 `yaml:"unit_size"`
	WireframeAngleDeg float64 `yaml:"wireframe_angle_deg"`

	Colors FaceColors `yaml:"colors"`

	SessionQueue    int  `yaml:"session_queue"`
	EventLogEnabled bool `yaml:"event_log_enabled"`
}

// FaceColors are the six semantic face colors as RGB triples in [0,1].
type FaceColors struct {
	Top    [3]float32 `yaml:"top"`
	Bottom [3]float32 `yaml:"bottom"`
	Front  [3]float32 `yaml:"front"`
	Back   [3]float32 `yaml:"back"`
	Right  [3]float32 `yaml:"right"`
	Left   [3]float32 `yaml:"left"`
}

func Defaults() Tuning {
	pal := mesh.DefaultPalette()
	return Tuning{
		ProtocolVersion:   "1.0",
		DefaultResolution: 4,
		MaxResolution:     8,
		UnitSize:          1,
		WireframeAngleDeg: 30,
		Colors: FaceColors{
			Top:    pal.Top,
			Bottom: pal.Bottom,
			Front:  pal.Front,
			Back:   pal.Back,
			Right:  pal.Right,
			Left:   pal.Left,
		},
		SessionQueue:    16,
		EventLogEnabled: true,
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.DefaultResolution <= 0 || t.MaxResolution < t.DefaultResolution {
		return t, fmt.Errorf("tuning.yaml: bad resolution bounds %d/%d", t.DefaultResolution, t.MaxResolution)
	}
	return t, nil
}

// Palette converts the configured colors for the surface builder.
func (t Tuning) Palette() mesh.Palette {
	return mesh.Palette{
		Top:    t.Colors.Top,
		Bottom: t.Colors.Bottom,
		Front:  t.Colors.Front,
		Back:   t.Colors.Back,
		Right:  t.Colors.Right,
		Left:   t.Colors.Left,
	}
}
