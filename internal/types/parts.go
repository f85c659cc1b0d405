// Package types provides type definitions for the vehicle, damage and estimate data used throughout the fleet estimator.
package types

import "fmt"

// VehiclePart identifies one clickable region of the vehicle diagram.
type VehiclePart string

// The closed set of vehicle parts. Order matters: it is the canonical
// iteration order for rendering and listing.
const (
	PartHood                VehiclePart = "hood"
	PartWindshield          VehiclePart = "windshield"
	PartRoof                VehiclePart = "roof"
	PartTrunk               VehiclePart = "trunk"
	PartFrontBumper         VehiclePart = "front_bumper"
	PartRearBumper          VehiclePart = "rear_bumper"
	PartFrontLeftDoor       VehiclePart = "front_left_door"
	PartFrontRightDoor      VehiclePart = "front_right_door"
	PartRearLeftDoor        VehiclePart = "rear_left_door"
	PartRearRightDoor       VehiclePart = "rear_right_door"
	PartFrontLeftHeadlight  VehiclePart = "front_left_headlight"
	PartFrontRightHeadlight VehiclePart = "front_right_headlight"
	PartRearLeftHeadlight   VehiclePart = "rear_left_headlight"
	PartRearRightHeadlight  VehiclePart = "rear_right_headlight"
	PartFrontLeftTire       VehiclePart = "front_left_tire"
	PartFrontRightTire      VehiclePart = "front_right_tire"
	PartRearLeftTire        VehiclePart = "rear_left_tire"
	PartRearRightTire       VehiclePart = "rear_right_tire"
)

var vehicleParts = [...]VehiclePart{
	PartHood,
	PartWindshield,
	PartRoof,
	PartTrunk,
	PartFrontBumper,
	PartRearBumper,
	PartFrontLeftDoor,
	PartFrontRightDoor,
	PartRearLeftDoor,
	PartRearRightDoor,
	PartFrontLeftHeadlight,
	PartFrontRightHeadlight,
	PartRearLeftHeadlight,
	PartRearRightHeadlight,
	PartFrontLeftTire,
	PartFrontRightTire,
	PartRearLeftTire,
	PartRearRightTire,
}

// AllVehicleParts returns every known part in canonical order.
// The returned slice is a copy and may be modified by the caller.
func AllVehicleParts() []VehiclePart {
	parts := make([]VehiclePart, len(vehicleParts))
	copy(parts, vehicleParts[:])
	return parts
}

// IsValid reports whether p is a member of the known part set.
func (p VehiclePart) IsValid() bool {
	for _, known := range vehicleParts {
		if p == known {
			return true
		}
	}
	return false
}

// ParseVehiclePart converts an identifier such as "front_bumper" into a VehiclePart.
func ParseVehiclePart(s string) (VehiclePart, error) {
	p := VehiclePart(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown vehicle part: %q", s)
	}
	return p, nil
}

// ParseVehicleParts converts a list of identifiers, failing on the first unknown one.
func ParseVehicleParts(ids []string) ([]VehiclePart, error) {
	parts := make([]VehiclePart, 0, len(ids))
	for _, id := range ids {
		p, err := ParseVehiclePart(id)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}
