package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
)

// DecodeArrow parses a self-describing Arrow IPC file into a schema and a
// fully materialized row-major sequence of records, read by visiting each
// column vector at each row index. Struct columns produce nested Records,
// which are flattened for display. Field display types are resolved through
// the static type table after stripping parametrized suffixes.
func DecodeArrow(filePath string) (*Result, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is empty")
	}

	// The IPC reader needs a seekable source; compressed files are
	// decompressed into memory, plain files read from disk directly.
	var (
		src     ipc.ReadAtSeeker
		warning string
	)
	if _, compression := DetectKindAndCompression(filePath); compression != CompressionNone {
		data, w, err := ReadSource(filePath)
		if err != nil {
			return nil, err
		}
		src = bytes.NewReader(data)
		warning = w
	} else {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}

	r, err := ipc.NewFileReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open arrow file: %w", err)
	}
	defer r.Close()

	sch := r.Schema()
	schema := &Schema{Raw: sch.String()}
	for _, fld := range sch.Fields() {
		schema.Fields = append(schema.Fields, Field{
			Name: fld.Name,
			Type: DisplayTypeName(fld.Type.String()),
		})
	}

	var rows []Record
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read arrow record batch: %w", err)
		}

		numRows := int(rec.NumRows())
		numCols := int(rec.NumCols())
		for row := 0; row < numRows; row++ {
			out := make(Record, numCols)
			for col := 0; col < numCols; col++ {
				out[rec.ColumnName(col)] = arrowValue(rec.Column(col), row)
			}
			rows = append(rows, out)
		}
	}

	return &Result{
		Kind:    KindArrow,
		Schema:  schema,
		Rows:    FlattenAll(rows),
		Warning: warning,
	}, nil
}

// arrowValue extracts the value at row from a column vector as a Go native
// value. Struct columns become nested Records; types without a direct
// mapping fall back to their string rendering.
func arrowValue(col arrow.Array, row int) any {
	if col.IsNull(row) {
		return nil
	}

	switch arr := col.(type) {
	case *array.Boolean:
		return arr.Value(row)
	case *array.Int8:
		return arr.Value(row)
	case *array.Int16:
		return arr.Value(row)
	case *array.Int32:
		return arr.Value(row)
	case *array.Int64:
		return arr.Value(row)
	case *array.Uint8:
		return arr.Value(row)
	case *array.Uint16:
		return arr.Value(row)
	case *array.Uint32:
		return arr.Value(row)
	case *array.Uint64:
		return arr.Value(row)
	case *array.Float32:
		return arr.Value(row)
	case *array.Float64:
		return arr.Value(row)
	case *array.String:
		return arr.Value(row)
	case *array.LargeString:
		return arr.Value(row)
	case *array.Binary:
		return arr.Value(row)
	case *array.Timestamp:
		unit := arr.DataType().(*arrow.TimestampType).Unit
		return arr.Value(row).ToTime(unit).Format(time.RFC3339Nano)
	case *array.Date32:
		return arr.Value(row).ToTime().Format("2006-01-02")
	case *array.Date64:
		return arr.Value(row).ToTime().Format("2006-01-02")
	case *array.Struct:
		st := arr.DataType().(*arrow.StructType)
		nested := make(Record, arr.NumField())
		for j := 0; j < arr.NumField(); j++ {
			nested[st.Field(j).Name] = arrowValue(arr.Field(j), row)
		}
		return nested
	default:
		return col.ValueStr(row)
	}
}
