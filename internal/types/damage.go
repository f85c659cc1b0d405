package types

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DamageArea is a user-facing damage category derived from one or more vehicle parts.
type DamageArea string

// Known damage area labels.
const (
	AreaHood        DamageArea = "Hood"
	AreaWindshield  DamageArea = "Windshield"
	AreaRoof        DamageArea = "Roof"
	AreaTrunk       DamageArea = "Trunk"
	AreaFrontBumper DamageArea = "Front Bumper"
	AreaRearBumper  DamageArea = "Rear Bumper"
	AreaDoors       DamageArea = "Doors"
	AreaHeadlights  DamageArea = "Headlights"
	AreaTaillights  DamageArea = "Taillights"
	AreaTires       DamageArea = "Tires"
)

// JoinAreas renders areas as a comma separated list ("Hood, Doors").
func JoinAreas(areas []DamageArea) string {
	labels := make([]string, len(areas))
	for i, a := range areas {
		labels[i] = string(a)
	}
	return strings.Join(labels, ", ")
}

// DamageSketch is an encoded image of the current damage annotation.
// It is self-describing: the MIME type travels with the payload.
type DamageSketch struct {
	MIMEType string
	Data     []byte
}

// IsZero reports whether the sketch carries no image data.
func (s DamageSketch) IsZero() bool {
	return s.MIMEType == "" || len(s.Data) == 0
}

// DataURI renders the sketch as data:<mime>;base64,<payload>.
func (s DamageSketch) DataURI() string {
	return "data:" + s.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(s.Data)
}

// ParseDamageSketch decodes a base64 data URI into a DamageSketch.
func ParseDamageSketch(uri string) (DamageSketch, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return DamageSketch{}, fmt.Errorf("sketch must be a data URI")
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DamageSketch{}, fmt.Errorf("sketch data URI has no payload")
	}

	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return DamageSketch{}, fmt.Errorf("sketch data URI must be base64 encoded")
	}
	if mimeType == "" {
		return DamageSketch{}, fmt.Errorf("sketch data URI has no MIME type")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DamageSketch{}, fmt.Errorf("failed to decode sketch payload: %w", err)
	}
	if len(data) == 0 {
		return DamageSketch{}, fmt.Errorf("sketch payload is empty")
	}

	return DamageSketch{MIMEType: mimeType, Data: data}, nil
}
