// Package decoder provides centralized reading and ingestion of tabular data
// files for all supported formats (CSV/text passthrough, spreadsheets, Arrow
// columnar files, Avro object containers). It abstracts format detection,
// decompression, schema extraction and row normalization.
package decoder

// Kind identifies the decoding strategy for a data file.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindBinarySpreadsheet
	KindTextSpreadsheet
	KindArrow
	KindAvro
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindBinarySpreadsheet:
		return "Spreadsheet"
	case KindTextSpreadsheet:
		return "TextSpreadsheet"
	case KindArrow:
		return "Arrow"
	case KindAvro:
		return "Avro"
	default:
		return "Unknown"
	}
}

// Record is one row of source data: an unordered mapping from field name to a
// scalar or nested value. Nested Records occur only in hierarchical formats
// (Arrow struct columns, Avro record fields).
type Record map[string]any

// FlatRecord is a Record guaranteed to contain only scalar values.
// Produced by Flatten.
type FlatRecord map[string]any

// Field describes one named, typed column of a decoded schema.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Schema describes the decoded field layout. Raw carries the format-specific
// schema descriptor untouched for consumers that want the original; Fields are
// the display-friendly projections.
type Schema struct {
	Fields []Field `json:"fields"`
	Raw    any     `json:"raw,omitempty"`
}

// TableSet lists the tables of a multi-table source (multi-sheet workbooks)
// in file order, plus the currently selected table name.
type TableSet struct {
	Names    []string `json:"names"`
	Selected string   `json:"selected"`
}

// Result is the outcome of a synchronous decode.
type Result struct {
	Kind    Kind
	Text    string // raw text for passthrough kinds
	Schema  *Schema
	Rows    []FlatRecord
	Tables  *TableSet
	Warning string // non-empty when the source decoded only partially
}
