package models

// ViewAverage selects the cross-dataset average view when normalizing records.
const ViewAverage = "average"

// ModelRecord is one model's metrics flattened for a single view (one dataset
// or the cross-dataset average).
//
// The five populated fields are nil when the source document carries no value
// for them; presence is independent per field. The reserved fields are part
// of the record schema for consumers that expect a stable shape, but no
// current document shape populates them — they are always nil and serialize
// as explicit nulls, never as zero.
type ModelRecord struct {
	Model       string   `json:"model"`
	MAETotal    *float64 `json:"maeTotal"`
	MAENormal   *float64 `json:"maeNormal"`
	NormalRate  *float64 `json:"normalRate"`
	ADwT        *float64 `json:"adwt"`
	TimePerStep *float64 `json:"timePerStep"`

	// Reserved fields, never populated by current document shapes.
	MigrationCount        *float64 `json:"migrationCount"`
	ReproductionFailures  *float64 `json:"reproductionFailures"`
	UnphysicalRelaxations *float64 `json:"unphysicalRelaxations"`
	EnergyAnomalies       *float64 `json:"energyAnomalies"`
	ADwTAlt               *float64 `json:"adwtAlt"`
}
