package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRecordMarshalsAbsentFieldsAsNull(t *testing.T) {
	mae := 0.5
	rec := ModelRecord{Model: "M", MAETotal: &mae}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Shape stability: every field is present, absent ones as explicit null.
	for _, key := range []string{
		"model", "maeTotal", "maeNormal", "normalRate", "adwt", "timePerStep",
		"migrationCount", "reproductionFailures", "unphysicalRelaxations",
		"energyAnomalies", "adwtAlt",
	} {
		_, ok := decoded[key]
		assert.True(t, ok, "missing key %q", key)
	}

	assert.Equal(t, 0.5, decoded["maeTotal"])
	assert.Nil(t, decoded["maeNormal"])
	assert.Nil(t, decoded["migrationCount"])
}
