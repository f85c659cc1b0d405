package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateVehicleRequest_Validate(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		request CreateVehicleRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: CreateVehicleRequest{Make: "Toyota", Model: "Camry", Year: 2022, VIN: "12345ABCDE67890"},
		},
		{
			name:    "next model year allowed",
			request: CreateVehicleRequest{Make: "Ford", Model: "Explorer", Year: 2027, VIN: "FGHIJ12345KLMNO"},
		},
		{
			name:    "missing make",
			request: CreateVehicleRequest{Model: "Camry", Year: 2022, VIN: "X"},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "whitespace make",
			request: CreateVehicleRequest{Make: "   ", Model: "Camry", Year: 2022, VIN: "X"},
			wantErr: true,
			errMsg:  "make",
		},
		{
			name:    "whitespace vin",
			request: CreateVehicleRequest{Make: "Toyota", Model: "Camry", Year: 2022, VIN: "\t "},
			wantErr: true,
			errMsg:  "vin",
		},
		{
			name:    "year too old",
			request: CreateVehicleRequest{Make: "Ford", Model: "T", Year: 1899, VIN: "X"},
			wantErr: true,
			errMsg:  "year must be between",
		},
		{
			name:    "year too new",
			request: CreateVehicleRequest{Make: "Ford", Model: "T", Year: 2028, VIN: "X"},
			wantErr: true,
			errMsg:  "year must be between",
		},
		{
			name:    "invalid image url",
			request: CreateVehicleRequest{Make: "Ford", Model: "T", Year: 2020, VIN: "X", ImageURL: "not a url"},
			wantErr: true,
			errMsg:  "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate(now)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateVehicleRequest_ValidateTrims(t *testing.T) {
	r := CreateVehicleRequest{Make: " Toyota ", Model: "Camry\n", Year: 2022, VIN: " VIN123 ", ImageURL: " "}

	assert.NoError(t, r.Validate(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Toyota", r.Make)
	assert.Equal(t, "Camry", r.Model)
	assert.Equal(t, "VIN123", r.VIN)
	assert.Equal(t, PlaceholderImageURL, r.NormalizedImageURL())
}

func TestCreateVehicleRequest_NormalizedImageURL(t *testing.T) {
	r := CreateVehicleRequest{}
	assert.Equal(t, PlaceholderImageURL, r.NormalizedImageURL())

	r.ImageURL = "https://example.com/car.jpg"
	assert.Equal(t, "https://example.com/car.jpg", r.NormalizedImageURL())
}

func TestVehicle_DisplayName(t *testing.T) {
	v := &Vehicle{Make: "Porsche", Model: "911"}
	assert.Equal(t, "Porsche 911", v.DisplayName())
}
