package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fleet-estimator/internal/types"
)

func TestSketchCommand_DataURI(t *testing.T) {
	stdout, _, err := executeCommand(t, "sketch", "--parts", "hood,roof")
	require.NoError(t, err)

	uri := strings.TrimSpace(stdout)
	assert.True(t, strings.HasPrefix(uri, "data:image/svg+xml;base64,"))

	s, err := types.ParseDamageSketch(uri)
	require.NoError(t, err)
	assert.Contains(t, string(s.Data), `id="hood"`)
}

func TestSketchCommand_OrderIndependent(t *testing.T) {
	a, _, err := executeCommand(t, "sketch", "--parts", "hood,roof,hood")
	require.NoError(t, err)
	b, _, err := executeCommand(t, "sketch", "--parts", "roof,hood")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSketchCommand_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "damage.svg")

	stdout, _, err := executeCommand(t, "sketch", "--parts", "trunk", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 selected parts")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
	assert.Contains(t, string(data), `id="trunk"`)
}

func TestSketchCommand_UnknownPart(t *testing.T) {
	_, _, err := executeCommand(t, "sketch", "--parts", "bumper")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown vehicle part")
}
