package server

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleParts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doWithToken(t, "", http.MethodGet, "/parts", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[struct {
		Parts []struct {
			Part string `json:"part"`
			Area string `json:"area"`
		} `json:"parts"`
		Areas []string `json:"areas"`
	}](t, rec)
	require.Len(t, body.Parts, 18)
	assert.Equal(t, "hood", body.Parts[0].Part)
	assert.Equal(t, "Hood", body.Parts[0].Area)
	assert.Contains(t, body.Areas, "Taillights")
}

func TestHandleDamageAreas(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		parts []string
		want  []string
	}{
		{"doors collapse", []string{"front_left_door", "rear_right_door"}, []string{"Doors"}},
		{"first occurrence order", []string{"rear_bumper", "hood", "front_left_tire"}, []string{"Rear Bumper", "Hood", "Tires"}},
		{"empty selection", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/damage/areas", map[string]any{"parts": tt.parts})

			require.Equal(t, http.StatusOK, rec.Code)
			body := decodeBody[map[string][]string](t, rec)
			assert.Equal(t, tt.want, body["areas"])
		})
	}
}

func TestHandleDamageAreas_BadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body any
	}{
		{"unknown part", map[string]any{"parts": []string{"hood", "spoiler"}}},
		{"malformed JSON", `{"parts": [`},
		{"unknown field", `{"parts": [], "color": "red"}`},
		{"empty body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/damage/areas", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody[errorBody](t, rec)
			assert.Equal(t, "invalid_input", body.Kind)
			assert.False(t, body.Retryable)
		})
	}
}

func TestHandleDamageSketch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/damage/sketch", map[string]any{"parts": []string{"hood", "front_left_tire"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[sketchResponse](t, rec)
	assert.Equal(t, "image/svg+xml", body.MIMEType)
	assert.Len(t, body.Areas, 2)

	payload, ok := strings.CutPrefix(body.Sketch, "data:image/svg+xml;base64,")
	require.True(t, ok, "sketch should be an SVG data URI")
	svg, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Contains(t, string(svg), `id="hood" data-selected="true"`)
	assert.Contains(t, string(svg), `id="trunk" data-selected="false"`)
}

func TestHandleDamageSketch_OrderIndependent(t *testing.T) {
	env := newTestEnv(t)

	a := decodeBody[sketchResponse](t, env.do(t, http.MethodPost, "/damage/sketch", map[string]any{"parts": []string{"hood", "trunk"}}))
	b := decodeBody[sketchResponse](t, env.do(t, http.MethodPost, "/damage/sketch", map[string]any{"parts": []string{"trunk", "hood", "trunk"}}))

	assert.Equal(t, a.Sketch, b.Sketch)
}
