package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// DecodeSpreadsheet converts one sheet of a workbook into an ordered sequence
// of flat records. Binary workbook kinds are opened from the file path
// (decompressing into memory when compressed); text workbook kinds are read
// into memory first and opened from the raw buffer. If tableName is empty the
// first sheet in file order is selected. When the workbook has more than one
// sheet the full sheet list is reported as a TableSet for the caller's UI.
//
// Only OOXML workbooks (.xlsx, .xlsm) decode fully; the other recognized
// workbook extensions fail at open with an explanatory error.
func DecodeSpreadsheet(filePath string, kind Kind, tableName string) (*Result, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is empty")
	}

	var (
		f       *excelize.File
		warning string
		err     error
	)
	switch kind {
	case KindBinarySpreadsheet:
		if _, compression := DetectKindAndCompression(filePath); compression != CompressionNone {
			var data []byte
			data, warning, err = ReadSource(filePath)
			if err != nil {
				return nil, err
			}
			f, err = excelize.OpenReader(bytes.NewReader(data))
		} else {
			f, err = excelize.OpenFile(filePath)
		}
	case KindTextSpreadsheet:
		var data []byte
		data, warning, err = ReadSource(filePath)
		if err != nil {
			return nil, err
		}
		f, err = excelize.OpenReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("not a spreadsheet kind: %v", kind)
	}
	if err != nil {
		return nil, openError(filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	selected := sheets[0]
	if tableName != "" {
		found := false
		for _, name := range sheets {
			if name == tableName {
				selected = name
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("sheet not found: %s", tableName)
		}
	}

	rows, err := f.GetRows(selected)
	if err != nil {
		return nil, err
	}

	result := &Result{Kind: kind, Warning: warning}
	if len(sheets) > 1 {
		result.Tables = &TableSet{Names: sheets, Selected: selected}
	}
	if len(rows) == 0 {
		return result, nil
	}

	header := NormalizeHeaders(rows[0])
	records := make([]FlatRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// Cells past the header width are dropped; short rows leave the
		// missing fields absent rather than null-filled.
		rec := make(FlatRecord, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			rec[header[i]] = cell
		}
		records = append(records, rec)
	}
	result.Rows = records

	return result, nil
}

// openError adds context when a workbook fails to open under an extension the
// OOXML engine recognizes but cannot parse (.xls, .xlsb, .slk, .ods, .prn,
// .dif, ...). OOXML extensions keep the original error.
func openError(filePath string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return err
	}
	switch ext := SourceExtension(filePath); ext {
	case ".xlsx", ".xlsm":
		return err
	default:
		return fmt.Errorf("%s workbooks are recognized but not decodable by the xlsx engine: %w", ext, err)
	}
}
