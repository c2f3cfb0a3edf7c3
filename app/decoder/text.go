package decoder

import "fmt"

// DecodeText reads a passthrough file (CSV/TSV/TXT/JSON) as UTF-8 text
// without parsing it; the display surface is responsible for interpreting
// the content. Compressed sources are decompressed transparently.
func DecodeText(filePath string) (*Result, error) {
	data, warning, err := ReadSource(filePath)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	return &Result{
		Kind:    KindText,
		Text:    string(data),
		Warning: warning,
	}, nil
}
