package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/fleet-estimator/internal/types"
)

const vehicleColumns = `id, user_id, fleet_id, make, model, year, vin, image_url, created_at, updated_at`

// NewVehicle builds the record stored for a create request. The request is
// expected to be validated already.
func NewVehicle(userID uuid.UUID, fleetID string, req *types.CreateVehicleRequest, now time.Time) *types.Vehicle {
	if fleetID == "" {
		fleetID = types.DefaultFleetID
	}
	now = now.UTC()
	return &types.Vehicle{
		ID:        uuid.New(),
		UserID:    userID,
		FleetID:   fleetID,
		Make:      req.Make,
		Model:     req.Model,
		Year:      req.Year,
		VIN:       req.VIN,
		ImageURL:  req.NormalizedImageURL(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateVehicle inserts a vehicle and returns the stored record
func (db *DB) CreateVehicle(ctx context.Context, vehicle *types.Vehicle) (*types.Vehicle, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO vehicles (`+vehicleColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+vehicleColumns,
		vehicle.ID, vehicle.UserID, vehicle.FleetID, vehicle.Make, vehicle.Model,
		vehicle.Year, vehicle.VIN, vehicle.ImageURL, vehicle.CreatedAt, vehicle.UpdatedAt,
	)

	created, err := scanVehicle(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return created, nil
}

// GetVehicle retrieves a vehicle owned by userID in fleetID.
// Returns nil, nil if it does not exist or belongs to someone else.
func (db *DB) GetVehicle(ctx context.Context, userID uuid.UUID, fleetID string, vehicleID uuid.UUID) (*types.Vehicle, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles
		 WHERE id = $1 AND user_id = $2 AND fleet_id = $3`,
		vehicleID, userID, fleetID,
	)

	vehicle, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return vehicle, nil
}

// ListVehicles retrieves all vehicles of a user's fleet, newest first
func (db *DB) ListVehicles(ctx context.Context, userID uuid.UUID, fleetID string) ([]types.Vehicle, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles
		 WHERE user_id = $1 AND fleet_id = $2
		 ORDER BY created_at DESC, id`,
		userID, fleetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []types.Vehicle{}
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// DeleteVehicle removes a vehicle owned by userID in fleetID.
// Returns false if there was nothing to delete.
func (db *DB) DeleteVehicle(ctx context.Context, userID uuid.UUID, fleetID string, vehicleID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM vehicles WHERE id = $1 AND user_id = $2 AND fleet_id = $3`,
		vehicleID, userID, fleetID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanVehicle(row pgx.Row) (*types.Vehicle, error) {
	var v types.Vehicle
	err := row.Scan(
		&v.ID, &v.UserID, &v.FleetID, &v.Make, &v.Model,
		&v.Year, &v.VIN, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
