package terrain

import (
	"strings"

	"github.com/benoitkugler/missioncard/geometry"
	"gopkg.in/yaml.v3"
)

// This file decides, once, which coordinate encoding
// a YAML value uses. Order matters, since the shapes overlap.

// UnmarshalYAML never returns an error for an unknown shape:
// it produces an Unrecognized value instead, so that a single bad
// building does not prevent the others to be placed.
func (c *Coords) UnmarshalYAML(node *yaml.Node) error {
	*c = decodeCoords(node)
	return nil
}

func decodeCoords(node *yaml.Node) Coords {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return Unrecognized(rawNode(node))
	}
	first, second := node.Content[0], node.Content[1]

	// [[x1, y1], [x2, y2]]
	if first.Kind == yaml.SequenceNode && second.Kind == yaml.SequenceNode {
		var c1, c2 geometry.Point
		if first.Decode(&c1) != nil || second.Decode(&c2) != nil {
			return Unrecognized(rawNode(node))
		}
		return TwoCorner(c1, c2)
	}

	// [x, y]
	if isNumber(first) && isNumber(second) {
		var p geometry.Point
		if node.Decode(&p) != nil {
			return Unrecognized(rawNode(node))
		}
		return SinglePoint(p)
	}

	// [{anchor, map_coords}, {anchor, map_coords}]
	if first.Kind == yaml.MappingNode && hasKeys(first, "anchor", "map_coords") {
		p1, ok1 := decodeAnchoredPoint(first)
		p2, ok2 := decodeAnchoredPoint(second)
		if ok1 && ok2 {
			return AnchoredPair(p1, p2)
		}
	}

	return Unrecognized(rawNode(node))
}

func isNumber(node *yaml.Node) bool {
	if node.Kind != yaml.ScalarNode {
		return false
	}
	tag := node.ShortTag()
	return tag == "!!int" || tag == "!!float"
}

func hasKeys(mapping *yaml.Node, keys ...string) bool {
	for _, key := range keys {
		found := false
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			if mapping.Content[i].Value == key {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type anchoredPointYAML struct {
	Anchor    yaml.Node   `yaml:"anchor"`
	MapCoords []yaml.Node `yaml:"map_coords"`
}

func decodeAnchoredPoint(node *yaml.Node) (AnchoredPoint, bool) {
	var (
		raw anchoredPointYAML
		out AnchoredPoint
	)
	if node.Kind != yaml.MappingNode || node.Decode(&raw) != nil {
		return out, false
	}
	if len(raw.MapCoords) < 2 || !isNumber(&raw.MapCoords[0]) || !isNumber(&raw.MapCoords[1]) {
		return out, false
	}
	switch {
	case raw.Anchor.Kind == yaml.SequenceNode:
		if raw.Anchor.Decode(&out.Anchor) != nil {
			return out, false
		}
	case raw.Anchor.Kind == yaml.ScalarNode && !isNumber(&raw.Anchor) && raw.Anchor.Value != "":
		// a name: the position is still known, not the rotation
		out.AnchorName = geometry.Anchor(raw.Anchor.Value)
	default:
		return out, false
	}
	if raw.MapCoords[0].Decode(&out.MapCoords.X) != nil || raw.MapCoords[1].Decode(&out.MapCoords.Y) != nil {
		return out, false
	}
	if len(raw.MapCoords) > 2 {
		out.MapAnchor = geometry.Anchor(raw.MapCoords[2].Value)
	}
	return out, true
}

// rawNode renders `node` on one line, for diagnostics
func rawNode(node *yaml.Node) string {
	out, err := yaml.Marshal(node)
	if err != nil {
		return node.Value
	}
	return strings.Join(strings.Fields(string(out)), " ")
}

// UnmarshalYAML dispatches on the `type` field.
func (s *Structure) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Type   string           `yaml:"type"`
		Start  geometry.Point   `yaml:"start"`
		End    geometry.Point   `yaml:"end"`
		Points []geometry.Point `yaml:"points"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch raw.Type {
	case "line":
		*s = LineStructure(raw.Start, raw.End)
	case "poly":
		*s = PolyStructure(raw.Points...)
	default:
		*s = Structure{Kind: StructureUnknown, Name: raw.Type}
	}
	return nil
}
