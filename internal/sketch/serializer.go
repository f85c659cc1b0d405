package sketch

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/jonathan/fleet-estimator/internal/types"
)

// MIMEType is the media type of serialized sketches.
const MIMEType = "image/svg+xml"

const (
	bodyFill    = "#e5e7eb"
	bodyStroke  = "#4b5563"
	partFill    = "#d1d5db"
	partStroke  = "#6b7280"
	damagedFill = "#dc2626"
	strokeWidth = "0.5"
	defaultView = "0 0 200 100"
)

// ErrEmptyGeometry is returned when a geometry has no part shapes.
var ErrEmptyGeometry = errors.New("sketch geometry has no parts")

// Serialize encodes the selection as an SVG damage sketch. The output depends
// only on which parts are selected, never on selection order or repeats, so
// the same selection always yields the same bytes.
func Serialize(selected []types.VehiclePart, geometry Geometry) (types.DamageSketch, error) {
	svg, err := Render(selected, geometry)
	if err != nil {
		return types.DamageSketch{}, err
	}
	return types.DamageSketch{MIMEType: MIMEType, Data: svg}, nil
}

// Render returns the raw SVG document for the selection.
func Render(selected []types.VehiclePart, geometry Geometry) ([]byte, error) {
	if len(geometry.Parts) == 0 {
		return nil, ErrEmptyGeometry
	}

	damaged := make(map[types.VehiclePart]bool, len(selected))
	for _, p := range selected {
		damaged[p] = true
	}

	viewBox := geometry.ViewBox
	if viewBox == "" {
		viewBox = defaultView
	}

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="`)
	sb.WriteString(html.EscapeString(viewBox))
	sb.WriteString(`"><g>`)

	if geometry.Body != "" {
		fmt.Fprintf(&sb, `<path class="body" fill="%s" stroke="%s" stroke-width="%s" d="%s"/>`,
			bodyFill, bodyStroke, strokeWidth, html.EscapeString(geometry.Body))
	}

	// Canonical order keeps output stable; map iteration would not.
	for _, part := range types.AllVehicleParts() {
		shape, ok := geometry.Parts[part]
		if !ok {
			continue
		}
		writeShape(&sb, part, shape, damaged[part])
	}

	sb.WriteString(`</g></svg>`)
	return []byte(sb.String()), nil
}

func writeShape(sb *strings.Builder, part types.VehiclePart, shape Shape, isDamaged bool) {
	fill := partFill
	if isDamaged {
		fill = damagedFill
	}

	attrs := fmt.Sprintf(`id="%s" data-selected="%t" fill="%s" stroke="%s" stroke-width="%s"`,
		html.EscapeString(string(part)), isDamaged, fill, partStroke, strokeWidth)

	switch shape.Kind {
	case ShapeCircle:
		fmt.Fprintf(sb, `<circle %s cx="%s" cy="%s" r="%s"/>`,
			attrs, formatCoord(shape.CX), formatCoord(shape.CY), formatCoord(shape.R))
	default:
		fmt.Fprintf(sb, `<path %s d="%s"/>`, attrs, html.EscapeString(shape.D))
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
