package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FieldDescriptor describes a body field for UI display.
type FieldDescriptor struct {
	ID     string // Unique identifier
	Label  string // Display name
	Format string // Printf format (e.g., "%.2f")
	Unit   string
	Group  string // Logical grouping
}

// BodyFieldDescriptors returns metadata for the inspector panel.
// Field IDs must match cases in GetBodyValue().
func BodyFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "mass", Label: "Mass", Format: "%.3e", Unit: "kg", Group: "body"},
		{ID: "radius", Label: "Radius", Format: "%.3e", Unit: "m", Group: "body"},
		{ID: "x", Label: "X", Format: "%.3f", Unit: "AU", Group: "motion"},
		{ID: "y", Label: "Y", Format: "%.3f", Unit: "AU", Group: "motion"},
		{ID: "speed", Label: "Speed", Format: "%.2f", Unit: "km/s", Group: "motion"},
		{ID: "heading", Label: "Heading", Format: "%.1f", Unit: "deg", Group: "motion"},
		{ID: "trail", Label: "Trail", Format: "%.0f", Unit: "pts", Group: "motion"},
	}
}

// BodyGroups returns the logical groupings for body fields.
func BodyGroups() []string {
	return []string{"body", "motion"}
}

// GetBodyValue extracts a field value by ID. Unknown IDs return 0.
func GetBodyValue(pos *Position, vel *Velocity, body *Body, trail *Trail, au float64, fieldID string) float64 {
	switch fieldID {
	case "mass":
		return body.Mass
	case "radius":
		return body.Radius
	case "x":
		return pos.X / au
	case "y":
		return pos.Y / au
	case "speed":
		return r2.Norm(vel.Vec) / 1000
	case "heading":
		return math.Atan2(vel.Y, vel.X) * 180 / math.Pi
	case "trail":
		if trail == nil {
			return 0
		}
		return float64(len(trail.Points))
	default:
		return 0
	}
}
