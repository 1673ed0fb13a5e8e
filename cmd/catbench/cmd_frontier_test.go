package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbench/leaderboard/internal/webapi"
)

func runFrontierCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newFrontierCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ---------------------------------------------------------------------------
// Listing configured frontiers
// ---------------------------------------------------------------------------

func TestFrontierCommand_ListsDefaults(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	out, err := runFrontierCommand(t, "--data", docPath)
	require.NoError(t, err)

	assert.Contains(t, out, "accuracy-vs-speed")
	assert.Contains(t, out, "robustness-vs-speed")
	assert.Contains(t, out, "minimize")
	assert.Contains(t, out, "maximize")
}

// ---------------------------------------------------------------------------
// Computing a named frontier
// ---------------------------------------------------------------------------

func TestFrontierCommand_TableOutput(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	out, err := runFrontierCommand(t, "accuracy-vs-speed", "--data", docPath)
	require.NoError(t, err)

	assert.Contains(t, out, "accuracy-vs-speed (average view)")
	assert.Contains(t, out, "fast")
	assert.Contains(t, out, "accurate")
	assert.Contains(t, out, "2 of 3 models on the frontier")
}

func TestFrontierCommand_JSONOutput(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	out, err := runFrontierCommand(t, "accuracy-vs-speed", "--data", docPath, "--format", "json")
	require.NoError(t, err)

	var result webapi.FrontierResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "accuracy-vs-speed", result.Name)
	assert.Len(t, result.Points, 3)
	assert.Len(t, result.Frontier, 2)
}

func TestFrontierCommand_DatasetView(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	out, err := runFrontierCommand(t, "accuracy-vs-speed", "--data", docPath, "--view", "cathub")
	require.NoError(t, err)
	assert.Contains(t, out, "(cathub view)")
}

// ---------------------------------------------------------------------------
// Error handling
// ---------------------------------------------------------------------------

func TestFrontierCommand_UnknownName(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	_, err := runFrontierCommand(t, "no-such-frontier", "--data", docPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, webapi.ErrUnknownFrontier)
}

func TestFrontierCommand_InvalidFormat(t *testing.T) {
	_, err := runFrontierCommand(t, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFrontierCommand_RejectsWrongBasename(t *testing.T) {
	_, err := runFrontierCommand(t, "accuracy-vs-speed", "--data", "somewhere/other.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leaderboard_data.json")
}
