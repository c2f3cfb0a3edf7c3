package decoder

import "strings"

// displayTypeNames maps decoded field type names to the display-friendly
// names the rendering surface understands. Keys are looked up after
// stripping any parametrized suffix (see stripTypeParams), so
// "timestamp[ms, tz=UTC]" and "decimal128(10, 2)" resolve through their
// base names.
var displayTypeNames = map[string]string{
	// strings
	"utf8":       "string",
	"large_utf8": "string",
	"string":     "string",
	"enum":       "string",

	// booleans
	"bool":    "boolean",
	"boolean": "boolean",

	// integers
	"int8":   "integer",
	"int16":  "integer",
	"int32":  "integer",
	"int64":  "integer",
	"uint8":  "integer",
	"uint16": "integer",
	"uint32": "integer",
	"uint64": "integer",
	"int":    "integer",
	"long":   "integer",

	// floating point and decimals
	"float16":    "number",
	"float32":    "number",
	"float64":    "number",
	"float":      "number",
	"double":     "number",
	"decimal":    "number",
	"decimal128": "number",
	"decimal256": "number",

	// temporal
	"timestamp": "datetime",
	"date32":    "date",
	"date64":    "date",
	"date":      "date",
	"time32":    "time",
	"time64":    "time",
	"duration":  "duration",

	// binary
	"binary":            "binary",
	"large_binary":      "binary",
	"fixed_size_binary": "binary",
	"bytes":             "binary",
	"fixed":             "binary",

	// nested
	"struct":          "record",
	"record":          "record",
	"list":            "array",
	"large_list":      "array",
	"fixed_size_list": "array",
	"array":           "array",
	"map":             "map",

	"null": "null",
}

// DisplayTypeName translates a raw field type name into its display-friendly
// name. Unknown base names are returned unchanged after normalization.
func DisplayTypeName(raw string) string {
	base := stripTypeParams(strings.ToLower(strings.TrimSpace(raw)))
	if name, ok := displayTypeNames[base]; ok {
		return name
	}
	return base
}

// stripTypeParams removes any parametrized suffix from a type name:
// everything from the first '(', '<' or '[' onwards.
func stripTypeParams(name string) string {
	if idx := strings.IndexAny(name, "(<["); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}
