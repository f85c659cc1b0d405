// Package sketch renders a part selection into the SVG damage sketch attached to AI estimate requests.
package sketch

import "github.com/jonathan/fleet-estimator/internal/types"

// ShapeKind selects how a Shape is drawn.
type ShapeKind string

// Supported shape kinds.
const (
	ShapePath   ShapeKind = "path"
	ShapeCircle ShapeKind = "circle"
)

// Shape is the outline of one clickable part.
type Shape struct {
	Kind ShapeKind
	D    string // path data, for ShapePath
	CX   float64
	CY   float64
	R    float64
}

// Geometry describes the diagram: canvas, body outline and one shape per part.
// It is used only for drawing.
type Geometry struct {
	ViewBox string
	Body    string
	Parts   map[types.VehiclePart]Shape
}

func path(d string) Shape { return Shape{Kind: ShapePath, D: d} }

func circle(cx, cy, r float64) Shape { return Shape{Kind: ShapeCircle, CX: cx, CY: cy, R: r} }

// DefaultGeometry returns the top-down car diagram.
func DefaultGeometry() Geometry {
	return Geometry{
		ViewBox: "0 0 200 100",
		Body:    "M 50,5 H 150 C 155,5 155,10 150,10 L 160,20 L 165,25 V 75 L 160,80 L 150,90 C 155,90 155,95 150,95 H 50 C 45,95 45,90 50,90 L 40,80 L 35,75 V 25 L 40,20 L 50,10 C 45,10 45,5 50,5 Z",
		Parts: map[types.VehiclePart]Shape{
			types.PartHood:       path("M 55,12 H 145 L 155,22 H 45 Z"),
			types.PartWindshield: path("M 155,23 H 45 L 50,33 H 150 Z"),
			types.PartRoof:       path("M 51,34 H 149 L 146,66 H 54 Z"),
			types.PartTrunk:      path("M 55,67 H 145 L 140,77 H 60 Z"),

			types.PartFrontBumper: path("M 50,5 H 150 C 155,5 155,10 150,10 H 50 C 45,10 45,5 50,5 Z"),
			types.PartRearBumper:  path("M 50,95 H 150 C 155,95 155,90 150,90 H 50 C 45,90 45,95 50,95 Z"),

			types.PartFrontLeftDoor:  path("M 44,23 L 38,26 V 48 L 51,49 V 33 Z"),
			types.PartRearLeftDoor:   path("M 38,50 V 74 L 44,77 L 54,76 V 50 Z"),
			types.PartFrontRightDoor: path("M 156,23 L 162,26 V 48 L 149,49 V 33 Z"),
			types.PartRearRightDoor:  path("M 162,50 V 74 L 156,77 L 146,76 V 50 Z"),

			types.PartFrontLeftHeadlight:  path("M 40,11 H 50 V 19 H 42 Z"),
			types.PartFrontRightHeadlight: path("M 160,11 H 150 V 19 H 158 Z"),
			types.PartRearLeftHeadlight:   path("M 40,89 H 50 V 81 H 42 Z"),
			types.PartRearRightHeadlight:  path("M 160,89 H 150 V 81 H 158 Z"),

			types.PartFrontLeftTire:  circle(33, 25, 5),
			types.PartFrontRightTire: circle(167, 25, 5),
			types.PartRearLeftTire:   circle(33, 75, 5),
			types.PartRearRightTire:  circle(167, 75, 5),
		},
	}
}
