package mission

import (
	"fmt"
	"log/slog"

	"github.com/benoitkugler/missioncard/geometry"
	"github.com/benoitkugler/missioncard/terrain"
	"github.com/peterstace/simplefeatures/geom"
)

// FindingKind classifies the problems reported by Check.
type FindingKind uint8

const (
	BuildingOffField FindingKind = iota + 1 // the template does not touch the battlefield
	BuildingOverEdge                        // the template crosses an edge
	ZonesOverlap
	ObjectiveOffField
)

func (k FindingKind) String() string {
	switch k {
	case BuildingOffField:
		return "building-off-field"
	case BuildingOverEdge:
		return "building-over-edge"
	case ZonesOverlap:
		return "zones-overlap"
	case ObjectiveOffField:
		return "objective-off-field"
	default:
		return fmt.Sprintf("<finding %d>", k)
	}
}

// Finding is a non fatal problem in a mission.
type Finding struct {
	Kind    FindingKind
	Message string
}

func (f Finding) String() string { return f.Kind.String() + ": " + f.Message }

// overlaps smaller than this are rounding noise
const overlapTolerance = 1e-6

// Check inspects the mission layout and returns the suspicious
// placements. It never fails: the card is still renderable.
func Check(cfg *Config, log *slog.Logger) []Finding {
	if log == nil {
		log = slog.Default()
	}
	size := cfg.Base.Size
	var out []Finding

	for i, obj := range cfg.Mission.Objectives {
		p := geometry.ToAbsolute(size, obj.Point, geometry.Center)
		if p.X < 0 || p.Y < 0 || p.X > size.Width || p.Y > size.Height {
			out = append(out, Finding{ObjectiveOffField, fmt.Sprintf("objective %d at %s", i, p)})
		}
	}

	if f, ok := checkZones(cfg, log); ok {
		out = append(out, f)
	}

	if cfg.Terrain != nil {
		placed := terrain.PlaceLayout(cfg.Terrain.LayoutName, cfg.Terrain.Layout, cfg.Terrain.Buildings, size, log)
		for _, p := range placed {
			off, err := p.OffField(size)
			if err != nil {
				log.Warn("Could not build building footprint", "type", p.Type, "position", p.Position.String(), "err", err)
				continue
			}
			switch {
			case off:
				out = append(out, Finding{BuildingOffField, fmt.Sprintf("%s at %s", p.Type, p.Position)})
			case !p.InBounds(size):
				out = append(out, Finding{BuildingOverEdge, fmt.Sprintf("%s at %s", p.Type, p.Position)})
			}
		}
	}
	return out
}

// ZonePolygon returns the absolute polygon of the deployment zone.
// Zones with less than three vertices, or self intersecting, are rejected.
func ZonePolygon(size geometry.Size, zone DeploymentZone) (geom.Polygon, error) {
	if len(zone.Points) < 3 {
		return geom.Polygon{}, fmt.Errorf("deployment zone needs at least 3 vertices, got %d", len(zone.Points))
	}
	abs := make([]geometry.Point, len(zone.Points))
	for i, p := range zone.Points {
		abs[i] = geometry.ToAbsolute(size, p, geometry.Center)
	}
	return terrain.Polygon(abs...)
}

// zonePolygon logs invalid zones. Missing zones are skipped silently.
func zonePolygon(size geometry.Size, side string, zone DeploymentZone, log *slog.Logger) (geom.Polygon, bool) {
	if len(zone.Points) == 0 {
		return geom.Polygon{}, false
	}
	poly, err := ZonePolygon(size, zone)
	if err != nil {
		log.Warn("Invalid deployment zone", "side", side, "err", err)
		return geom.Polygon{}, false
	}
	return poly, true
}

func checkZones(cfg *Config, log *slog.Logger) (Finding, bool) {
	att, ok1 := zonePolygon(cfg.Base.Size, "attacker", cfg.Mission.Attacker, log)
	def, ok2 := zonePolygon(cfg.Base.Size, "defender", cfg.Mission.Defender, log)
	if !ok1 || !ok2 {
		return Finding{}, false
	}
	inter, err := geom.Intersection(att.AsGeometry(), def.AsGeometry())
	if err != nil {
		log.Warn("Could not compare deployment zones", "err", err)
		return Finding{}, false
	}
	if area := inter.Area(); area > overlapTolerance {
		return Finding{ZonesOverlap, fmt.Sprintf("attacker and defender zones share %.2f sq in", area)}, true
	}
	return Finding{}, false
}
