package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbench/leaderboard/internal/aggregate"
	"github.com/catbench/leaderboard/internal/compare"
	"github.com/catbench/leaderboard/internal/models"
)

func runCompareCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newCompareCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// laterDocument mutates the fixture: "dominated" is dropped, "improved" is
// added, and "fast" gets a better MAE.
func laterDocument() *models.Document {
	doc := fixtureDocument()
	doc.MLIPs.Delete("dominated")
	doc.MLIPs.Set("improved", &models.ModelEntry{
		Datasets: map[string]models.MetricSet{
			"cathub": {
				models.MetricMAETotal:    0.05,
				models.MetricNormalRate:  99,
				models.MetricTimePerStep: 0.05,
			},
		},
	})
	fast := doc.MLIPs.Get("fast")
	fast.Datasets["cathub"][models.MetricMAETotal] = 0.2
	doc.Metadata.NumMLIPs = doc.MLIPs.Len()
	aggregate.Finalize(doc)
	doc.Rankings = aggregate.BuildRankings(doc)
	return doc
}

// ---------------------------------------------------------------------------
// Argument validation
// ---------------------------------------------------------------------------

func TestCompareCommand_RequiresTwoArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{}},
		{"one arg", []string{"one.json"}},
		{"three args", []string{"a.json", "b.json", "c.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCompareCommand(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

// ---------------------------------------------------------------------------
// Error handling
// ---------------------------------------------------------------------------

func TestCompareCommand_MissingFile(t *testing.T) {
	_, err := runCompareCommand(t, "nope1.json", "nope2.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading nope1.json")
}

func TestCompareCommand_InvalidFormat(t *testing.T) {
	_, err := runCompareCommand(t, "a.json", "b.json", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

// ---------------------------------------------------------------------------
// Table output
// ---------------------------------------------------------------------------

func TestCompareCommand_TableOutput(t *testing.T) {
	beforePath := writeFixtureDocument(t, fixtureDocument())
	afterPath := writeFixtureDocument(t, laterDocument())

	out, err := runCompareCommand(t, beforePath, afterPath)
	require.NoError(t, err)

	assert.Contains(t, out, "LEADERBOARD COMPARISON")
	assert.Contains(t, out, "(added)")
	assert.Contains(t, out, "(removed)")
	assert.Contains(t, out, "improved")
	assert.Contains(t, out, "dominated")
	assert.Contains(t, out, models.MetricMAETotal)
}

// ---------------------------------------------------------------------------
// JSON output
// ---------------------------------------------------------------------------

func TestCompareCommand_JSONOutput(t *testing.T) {
	beforePath := writeFixtureDocument(t, fixtureDocument())
	afterPath := writeFixtureDocument(t, laterDocument())

	out, err := runCompareCommand(t, beforePath, afterPath, "--format", "json")
	require.NoError(t, err)

	var result compare.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Models, 4)

	byName := map[string]compare.ModelComparison{}
	for _, mc := range result.Models {
		byName[mc.Model] = mc
	}
	assert.True(t, byName["improved"].Added)
	assert.True(t, byName["dominated"].Removed)
	assert.False(t, byName["fast"].Added)
}
