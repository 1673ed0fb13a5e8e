package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbench/leaderboard/internal/models"
)

func runRankingsCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRankingsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRankingsCommand_AllCategories(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	out, err := runRankingsCommand(t, "--data", docPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Overall Score")
	assert.Contains(t, out, "Accuracy (MAE)")
	assert.Contains(t, out, "Success Rate")
	assert.Contains(t, out, "Speed")
	assert.Contains(t, out, "Coverage")
	assert.Contains(t, out, "accurate")
}

func TestRankingsCommand_SingleCategory(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	out, err := runRankingsCommand(t, "--data", docPath, "--category", "accuracy")
	require.NoError(t, err)

	assert.Contains(t, out, "Accuracy (MAE)")
	assert.NotContains(t, out, "Overall Score")
	// Accuracy ranks by MAE ascending, so the most accurate model comes first.
	assert.Contains(t, out, "1. accurate")
}

func TestRankingsCommand_JSONOutput(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	out, err := runRankingsCommand(t, "--data", docPath, "--format", "json")
	require.NoError(t, err)

	var rankings models.Rankings
	require.NoError(t, json.Unmarshal([]byte(out), &rankings))
	assert.Len(t, rankings.Overall, 3)
}

func TestRankingsCommand_UnknownCategory(t *testing.T) {
	docPath := writeFixtureDocument(t, fixtureDocument())

	_, err := runRankingsCommand(t, "--data", docPath, "--category", "vibes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestRankingsCommand_InvalidFormat(t *testing.T) {
	_, err := runRankingsCommand(t, "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
