// Package damage maps selected vehicle parts to the coarser damage areas shown to users and sent to estimators.
package damage

import "github.com/jonathan/fleet-estimator/internal/types"

// partAreas is many-to-one: the four doors collapse into "Doors", so which
// door was hit is not carried past this point.
var partAreas = map[types.VehiclePart]types.DamageArea{
	types.PartHood:                types.AreaHood,
	types.PartWindshield:          types.AreaWindshield,
	types.PartRoof:                types.AreaRoof,
	types.PartTrunk:               types.AreaTrunk,
	types.PartFrontBumper:         types.AreaFrontBumper,
	types.PartRearBumper:          types.AreaRearBumper,
	types.PartFrontLeftDoor:       types.AreaDoors,
	types.PartFrontRightDoor:      types.AreaDoors,
	types.PartRearLeftDoor:        types.AreaDoors,
	types.PartRearRightDoor:       types.AreaDoors,
	types.PartFrontLeftHeadlight:  types.AreaHeadlights,
	types.PartFrontRightHeadlight: types.AreaHeadlights,
	types.PartRearLeftHeadlight:   types.AreaTaillights,
	types.PartRearRightHeadlight:  types.AreaTaillights,
	types.PartFrontLeftTire:       types.AreaTires,
	types.PartFrontRightTire:      types.AreaTires,
	types.PartRearLeftTire:        types.AreaTires,
	types.PartRearRightTire:       types.AreaTires,
}

// AreaFor returns the damage area of a single part.
func AreaFor(part types.VehiclePart) (types.DamageArea, bool) {
	area, ok := partAreas[part]
	return area, ok
}

// MapPartsToAreas returns the distinct damage areas of the selected parts in
// first-occurrence order. Parts without an area are skipped. The result is
// never nil.
func MapPartsToAreas(selected []types.VehiclePart) []types.DamageArea {
	areas := make([]types.DamageArea, 0, len(selected))
	seen := make(map[types.DamageArea]bool, len(selected))

	for _, part := range selected {
		area, ok := partAreas[part]
		if !ok || seen[area] {
			continue
		}
		seen[area] = true
		areas = append(areas, area)
	}

	return areas
}

// Areas returns every distinct area in canonical part order.
func Areas() []types.DamageArea {
	return MapPartsToAreas(types.AllVehicleParts())
}

// PartArea pairs a part with its area, for listings.
type PartArea struct {
	Part types.VehiclePart `json:"part"`
	Area types.DamageArea  `json:"area"`
}

// Catalog lists every part with its area in canonical order.
func Catalog() []PartArea {
	parts := types.AllVehicleParts()
	catalog := make([]PartArea, 0, len(parts))
	for _, p := range parts {
		area, _ := AreaFor(p)
		catalog = append(catalog, PartArea{Part: p, Area: area})
	}
	return catalog
}
