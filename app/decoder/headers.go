package decoder

import "strings"

// excelColumnName converts a 0-based index to an Excel-style column name.
// Examples: 0 -> A, 25 -> Z, 26 -> AA, 702 -> AAA
func excelColumnName(index int) string {
	result := ""
	index++

	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}

	return result
}

// NormalizeHeaders replaces empty or whitespace-only header cells with
// Excel-style placeholder names (Unnamed_A, Unnamed_B, ...). Non-empty
// headers are preserved as-is, so field naming stays stable across formats.
func NormalizeHeaders(header []string) []string {
	normalized := make([]string, len(header))
	emptyCount := 0

	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			normalized[i] = "Unnamed_" + excelColumnName(emptyCount)
			emptyCount++
		} else {
			normalized[i] = h
		}
	}

	return normalized
}
