// Package validation checks generated leaderboard documents: structural
// validation against the embedded JSON Schema plus semantic lints the schema
// cannot express.
package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/catbench/leaderboard/schemas"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// leaderboardSchema is the compiled JSON Schema for leaderboard documents.
var leaderboardSchema *jsonschema.Schema

func init() {
	leaderboardSchema = mustCompileSchema(schemas.LeaderboardSchemaJSON, "leaderboard.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateDocumentFile validates a leaderboard JSON file at the given path.
// It returns schema violations and semantic lint findings separately.
func ValidateDocumentFile(path string) (schemaErrs, lintErrs []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document: %w", err)
	}
	schemaErrs, lintErrs = ValidateDocumentBytes(data)
	return schemaErrs, lintErrs, nil
}

// ValidateDocumentBytes validates raw JSON bytes: schema first, then lints.
// Lints are skipped when the document does not parse.
func ValidateDocumentBytes(data []byte) (schemaErrs, lintErrs []string) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}, nil
	}

	schemaErrs = validateAgainstSchema(leaderboardSchema, doc)
	lintErrs = lintDocument(doc)
	return schemaErrs, lintErrs
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// lintDocument runs semantic checks that the schema cannot express:
// ranking entries must name known models, metadata counts must match the
// actual collections, and every table row must match its column count.
func lintDocument(doc any) []string {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	var errs []string

	mlips, _ := root["mlips"].(map[string]any)
	datasets, _ := root["datasets"].(map[string]any)

	if meta, ok := root["metadata"].(map[string]any); ok {
		if n, ok := meta["num_mlips"].(float64); ok && mlips != nil && int(n) != len(mlips) {
			errs = append(errs, fmt.Sprintf("metadata: num_mlips is %d but document has %d models", int(n), len(mlips)))
		}
		if n, ok := meta["num_datasets"].(float64); ok && datasets != nil && int(n) != len(datasets) {
			errs = append(errs, fmt.Sprintf("metadata: num_datasets is %d but document has %d datasets", int(n), len(datasets)))
		}
	}

	if rankings, ok := root["rankings"].(map[string]any); ok {
		for category, list := range rankings {
			entries, ok := list.([]any)
			if !ok {
				continue
			}
			for i, raw := range entries {
				entry, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				name, _ := entry["mlip"].(string)
				if name != "" && mlips != nil {
					if _, known := mlips[name]; !known {
						errs = append(errs, fmt.Sprintf("rankings/%s/%d: unknown model %q", category, i, name))
					}
				}
			}
		}
	}

	if excel, ok := root["excel_data"].(map[string]any); ok {
		for dataset, sheets := range excel {
			tables, ok := sheets.(map[string]any)
			if !ok {
				continue
			}
			for sheet, raw := range tables {
				errs = append(errs, lintTable(fmt.Sprintf("excel_data/%s/%s", dataset, sheet), raw)...)
			}
		}
	}
	if breakdown, ok := root["adsorbate_breakdown"].(map[string]any); ok {
		for dataset, raw := range breakdown {
			errs = append(errs, lintTable(fmt.Sprintf("adsorbate_breakdown/%s", dataset), raw)...)
		}
	}

	return errs
}

func lintTable(loc string, raw any) []string {
	table, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	columns, _ := table["columns"].([]any)
	rows, _ := table["data"].([]any)

	var errs []string
	for i, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			continue
		}
		if len(cells) != len(columns) {
			errs = append(errs, fmt.Sprintf("%s: row %d has %d cells, expected %d", loc, i, len(cells), len(columns)))
		}
	}
	return errs
}
