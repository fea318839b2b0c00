// Package schema defines the column contracts for the four evaluation
// datasets: submission, pullsheet, catalog, and pull order.
//
// Each dataset has a Definition listing its field specs. The core loader
// checks the specs against a dataset's header before touching any rows; a
// required column that is absent from the header entirely is a schema-level
// failure, distinct from individual rows failing validation.
package schema

import (
	"fmt"
	"sort"
)

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldNumeric
)

// FieldSpec defines validation rules for a single column.
type FieldSpec struct {
	Name     string    // Normalized column name (see dataset.NormalizeHeader)
	Type     FieldType // Expected data type
	Required bool      // Column must exist in the dataset header
}

// Kind identifies one of the evaluation datasets.
type Kind string

const (
	KindSubmission Kind = "submission"
	KindPullsheet  Kind = "pullsheet"
	KindCatalog    Kind = "catalog"
	KindPullOrder  Kind = "pullorder"
)

// Definition describes a dataset kind: display label plus field specs.
type Definition struct {
	Kind       Kind
	Label      string
	FieldSpecs []FieldSpec
}

// RequiredColumns returns the names of all required columns, in spec order.
func (d Definition) RequiredColumns() []string {
	var cols []string
	for _, spec := range d.FieldSpecs {
		if spec.Required {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

var definitions = map[Kind]Definition{
	KindSubmission: {
		Kind:  KindSubmission,
		Label: "Submission",
		FieldSpecs: []FieldSpec{
			{Name: "tcgplayer_id", Type: FieldText, Required: true},
			{Name: "add_to_quantity", Type: FieldInteger, Required: true},
			{Name: "tcg_market_price", Type: FieldNumeric, Required: true},
		},
	},
	KindPullsheet: {
		Kind:  KindPullsheet,
		Label: "Pullsheet",
		FieldSpecs: []FieldSpec{
			{Name: "tcgplayer_id", Type: FieldText, Required: true},
			{Name: "max_qty", Type: FieldInteger, Required: true},
			{Name: "set_name", Type: FieldText, Required: false},
		},
	},
	KindCatalog: {
		Kind:  KindCatalog,
		Label: "Catalog",
		FieldSpecs: []FieldSpec{
			{Name: "tcgplayer_id", Type: FieldText, Required: true},
		},
	},
	KindPullOrder: {
		Kind:  KindPullOrder,
		Label: "Pull Order",
		FieldSpecs: []FieldSpec{
			{Name: "set_name", Type: FieldText, Required: true},
			{Name: "shelf_order", Type: FieldInteger, Required: true},
		},
	},
}

// Get returns the definition for a dataset kind.
func Get(kind Kind) (Definition, error) {
	def, ok := definitions[kind]
	if !ok {
		return Definition{}, fmt.Errorf("unknown dataset kind: %q", kind)
	}
	return def, nil
}

// All returns every dataset definition, sorted by kind for consistent
// ordering.
func All() []Definition {
	result := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Kind < result[j].Kind })
	return result
}
