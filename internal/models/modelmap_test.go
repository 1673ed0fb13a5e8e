package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelMapPreservesInsertionOrder(t *testing.T) {
	m := NewModelMap()
	m.Set("zeta", &ModelEntry{})
	m.Set("alpha", &ModelEntry{})
	m.Set("mid", &ModelEntry{})

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestModelMapSetExistingKeepsPosition(t *testing.T) {
	m := NewModelMap()
	m.Set("a", &ModelEntry{NumDatasets: 1})
	m.Set("b", &ModelEntry{})
	m.Set("a", &ModelEntry{NumDatasets: 9})

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, 9, m.Get("a").NumDatasets)
}

func TestModelMapJSONRoundTrip(t *testing.T) {
	m := NewModelMap()
	m.Set("MACE", &ModelEntry{
		Datasets: map[string]MetricSet{"AgPd": {MetricMAETotal: 0.5}},
	})
	m.Set("AlphaNet", &ModelEntry{NumDatasets: 2})

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded ModelMap
	require.NoError(t, json.Unmarshal(data, &decoded))

	// "MACE" sorts after "AlphaNet" lexically; only document order explains
	// this ordering surviving.
	assert.Equal(t, []string{"MACE", "AlphaNet"}, decoded.Keys())

	mace := decoded.Get("MACE")
	require.NotNil(t, mace)
	assert.InDelta(t, 0.5, mace.Datasets["AgPd"][MetricMAETotal], 1e-12)
}

func TestModelMapUnmarshalNull(t *testing.T) {
	var m ModelMap
	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.Zero(t, m.Len())
}

func TestModelMapUnmarshalRejectsArray(t *testing.T) {
	var m ModelMap
	err := json.Unmarshal([]byte("[1,2]"), &m)
	require.Error(t, err)
}

func TestModelMapGetMissing(t *testing.T) {
	m := NewModelMap()
	assert.Nil(t, m.Get("nope"))

	var zero ModelMap
	assert.Nil(t, zero.Get("nope"))
}

func TestModelMapDelete(t *testing.T) {
	m := NewModelMap()
	m.Set("a", &ModelEntry{})
	m.Set("b", &ModelEntry{})
	m.Set("c", &ModelEntry{})

	m.Delete("b")
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.Nil(t, m.Get("b"))

	m.Delete("nope") // no-op
	assert.Equal(t, 2, m.Len())

	var zero ModelMap
	zero.Delete("a") // no-op on zero value
}
