package normalize

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// AdsorbateRow is the typed form of one per-adsorbate breakdown row. Only the
// well-known columns are decoded; sheets carry extra scheme-specific columns
// that stay in the raw Row.
type AdsorbateRow struct {
	Adsorbate     string  `mapstructure:"Adsorbate" json:"adsorbate"`
	NumStructures int     `mapstructure:"Num_structures" json:"num_structures"`
	MAE           float64 `mapstructure:"MAE (eV)" json:"mae"`
	AnomalyTotal  float64 `mapstructure:"Anomaly count - total" json:"anomaly_total"`
}

// DecodeAdsorbateRows decodes projected rows into typed AdsorbateRow values.
// Unknown columns are ignored; numeric cells decode weakly so integer-valued
// floats land in int fields.
func DecodeAdsorbateRows(rows []Row) ([]AdsorbateRow, error) {
	out := make([]AdsorbateRow, 0, len(rows))
	for i, row := range rows {
		var ar AdsorbateRow
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &ar,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(map[string]any(row)); err != nil {
			return nil, fmt.Errorf("decoding breakdown row %d: %w", i, err)
		}
		out = append(out, ar)
	}
	return out, nil
}
