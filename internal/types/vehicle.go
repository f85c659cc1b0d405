package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultFleetID is the fleet used when a user has not configured one.
const DefaultFleetID = "default_fleet"

// PlaceholderImageURL is stored for vehicles registered without a photo.
const PlaceholderImageURL = "https://picsum.photos/seed/vehicle/600/400"

// MinVehicleYear is the earliest model year accepted on registration.
const MinVehicleYear = 1900

// Vehicle is a registered fleet vehicle.
type Vehicle struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	FleetID   string    `json:"fleetId"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	VIN       string    `json:"vin"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName returns "Make Model".
func (v *Vehicle) DisplayName() string {
	return fmt.Sprintf("%s %s", v.Make, v.Model)
}

// CreateVehicleRequest represents the request to register a vehicle in a fleet.
type CreateVehicleRequest struct {
	Make     string `json:"make" validate:"required"`
	Model    string `json:"model" validate:"required"`
	Year     int    `json:"year" validate:"required"`
	VIN      string `json:"vin" validate:"required"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// Validate trims the text fields in place, then validates the request. The
// year upper bound moves with the calendar, so it is checked against now
// rather than a struct tag.
func (r *CreateVehicleRequest) Validate(now time.Time) error {
	r.Make = strings.TrimSpace(r.Make)
	r.Model = strings.TrimSpace(r.Model)
	r.VIN = strings.TrimSpace(r.VIN)
	r.ImageURL = strings.TrimSpace(r.ImageURL)

	if err := validate.Struct(r); err != nil {
		return err
	}
	maxYear := now.Year() + 1
	if r.Year < MinVehicleYear || r.Year > maxYear {
		return fmt.Errorf("year must be between %d and %d", MinVehicleYear, maxYear)
	}
	return nil
}

// NormalizedImageURL returns the requested image URL or the placeholder.
func (r *CreateVehicleRequest) NormalizedImageURL() string {
	if r.ImageURL == "" {
		return PlaceholderImageURL
	}
	return r.ImageURL
}
