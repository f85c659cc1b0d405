package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/fleet-estimator/internal/types"
)

// VehicleStore persists vehicles per user and fleet. *db.DB implements it.
// Get and Delete report a missing or foreign vehicle as (nil, nil) and false.
type VehicleStore interface {
	CreateVehicle(ctx context.Context, vehicle *types.Vehicle) (*types.Vehicle, error)
	GetVehicle(ctx context.Context, userID uuid.UUID, fleetID string, vehicleID uuid.UUID) (*types.Vehicle, error)
	ListVehicles(ctx context.Context, userID uuid.UUID, fleetID string) ([]types.Vehicle, error)
	DeleteVehicle(ctx context.Context, userID uuid.UUID, fleetID string, vehicleID uuid.UUID) (bool, error)
}
