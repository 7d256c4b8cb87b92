// Defines the declarative configuration of a mission card,
// and how it is loaded from YAML files.
package mission

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/benoitkugler/missioncard/geometry"
	"github.com/benoitkugler/missioncard/terrain"
	"gopkg.in/yaml.v3"
)

// Config is the full description of a card.
type Config struct {
	Base    Base     `yaml:"base"`
	Main    Main     `yaml:"main"`
	Mission Mission  `yaml:"mission"`
	Terrain *Terrain `yaml:"terrain"` // optional
}

// Attributes are SVG presentation attributes. Underscores in
// keys are written as dashes (stroke_width -> stroke-width).
type Attributes map[string]string

// Float returns the numeric value of `key`, or 0.
func (a Attributes) Float(key string) float64 {
	f, _ := strconv.ParseFloat(a[key], 64)
	return f
}

// Keys returns the sorted keys, so that output is deterministic.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Base holds the battlefield size and the styling.
type Base struct {
	Size             geometry.Size  `yaml:"size"`
	GuideLine        Attributes     `yaml:"guide_line"`
	Objective        ObjectiveStyle `yaml:"objective"`
	Attacker         SideStyle      `yaml:"attacker"`
	Defender         SideStyle      `yaml:"defender"`
	Building         BuildingStyle  `yaml:"building"`
	Grid             GridStyle      `yaml:"grid"`
	CenterMaskRadius float64        `yaml:"center_mask_radius"` // default to 9
}

// ObjectiveStyle describes the objective marker: the
// marker itself, and its area of influence.
type ObjectiveStyle struct {
	Real      Attributes `yaml:"real"` // must include r
	Influence struct {
		Radius float64 `yaml:"radius"`
		Fill   string  `yaml:"fill"`
		Stroke string  `yaml:"stroke"`
	} `yaml:"influence"`
}

// SideStyle holds the colors of a player, as hexadecimal
// values without the leading #.
type SideStyle struct {
	Fill   string `yaml:"fill"`
	Stroke string `yaml:"stroke"`
}

// BuildingStyle is shared by every building.
type BuildingStyle struct {
	Opacity  string `yaml:"opacity"`
	Render   bool   `yaml:"render"` // draw structures
	Template struct {
		Fill            string `yaml:"fill"` // hexadecimal, without #
		Stroke          string `yaml:"stroke"`
		StrokeDasharray string `yaml:"stroke_dasharray"`
		StrokeWidth     string `yaml:"stroke_width"`
	} `yaml:"template"`
	Structure struct {
		Fill        string `yaml:"fill"`
		Stroke      string `yaml:"stroke"`
		StrokeWidth string `yaml:"stroke_width"`
	} `yaml:"structure"`
}

// GridStyle configures the optional grid overlay.
type GridStyle struct {
	Draw    bool       `yaml:"draw"`
	Spacing float64    `yaml:"spacing"` // inches, default to 6
	Line    Attributes `yaml:"line"`
}

// Main holds the rendering switches.
type Main struct {
	Objective struct {
		Guides Guides `yaml:"guides"`
	} `yaml:"objective"`
}

// Guides configures the measurement arrows drawn from
// objectives to the nearest edges.
type Guides struct {
	Draw bool       `yaml:"draw"`
	Line Attributes `yaml:"line"`
	Text Attributes `yaml:"text"`
}

// Mission holds the mission specific data.
type Mission struct {
	Objectives     []Objective    `yaml:"objectives"`
	Attacker       DeploymentZone `yaml:"attacker"`
	Defender       DeploymentZone `yaml:"defender"`
	HiddenSupplies bool           `yaml:"hidden_supplies"`
	TheRitual      bool           `yaml:"the_ritual"`
}

// DeploymentZone is a polygon whose vertices are relative
// to the battlefield center.
type DeploymentZone struct {
	Points     []geometry.Point `yaml:"deployment_zone"`
	MaskCenter bool             `yaml:"mask_center"`
}

// Objective is an objective position, relative to the battlefield center.
type Objective struct {
	geometry.Point
	Ritual bool // tagged with "ritual"
}

// IsCenter returns true for the objective at the battlefield center.
func (o Objective) IsCenter() bool { return o.X == 0 && o.Y == 0 }

// IsRitual returns true for the objectives kept by The Ritual:
// the tagged ones and the center one.
func (o Objective) IsRitual() bool { return o.Ritual || o.IsCenter() }

// UnmarshalYAML reads the `[x, y]` and `[x, y, "ritual"]` forms.
func (o *Objective) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) < 2 || len(node.Content) > 3 {
		return fmt.Errorf("line %d: objective must be [x, y] or [x, y, tag]", node.Line)
	}
	if err := node.Content[0].Decode(&o.X); err != nil {
		return err
	}
	if err := node.Content[1].Decode(&o.Y); err != nil {
		return err
	}
	o.Ritual = len(node.Content) == 3 && node.Content[2].Value == "ritual"
	return nil
}

// Terrain holds the building catalog and the layouts.
type Terrain struct {
	LayoutName string          `yaml:"layoutName"`
	Layout     terrain.Layouts `yaml:"layout"`
	Buildings  terrain.Catalog `yaml:"buildings"`
}

const (
	defaultCenterMaskRadius = 9
	defaultGridSpacing      = 6
)

// setDefaults fills the optional values left empty
func (cfg *Config) setDefaults() {
	if cfg.Base.CenterMaskRadius == 0 {
		cfg.Base.CenterMaskRadius = defaultCenterMaskRadius
	}
	if cfg.Base.Grid.Spacing <= 0 {
		cfg.Base.Grid.Spacing = defaultGridSpacing
	}
	if cfg.Base.Building.Opacity == "" {
		cfg.Base.Building.Opacity = "1"
	}
}
