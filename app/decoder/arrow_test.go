package decoder

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

func writeArrowFile(t *testing.T, path string, schema *arrow.Schema, build func(b *array.RecordBuilder)) {
	t.Helper()

	mem := memory.NewGoAllocator()
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	build(b)

	rec := b.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		t.Fatalf("Failed to create ipc writer: %v", err)
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Failed to write record batch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close ipc writer: %v", err)
	}
}

func TestDecodeArrow_Scalars(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "arrow_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)

	path := filepath.Join(tmpDir, "data.arrow")
	writeArrowFile(t, path, schema, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2}, nil)
		b.Field(1).(*array.StringBuilder).AppendValues([]string{"alpha", "beta"}, nil)
		b.Field(2).(*array.Float64Builder).Append(9.5)
		b.Field(2).(*array.Float64Builder).AppendNull()
	})

	result, err := DecodeArrow(path)
	if err != nil {
		t.Fatalf("DecodeArrow failed: %v", err)
	}
	if result.Kind != KindArrow {
		t.Errorf("Kind = %v, want Arrow", result.Kind)
	}

	wantFields := []Field{
		{Name: "id", Type: "integer"},
		{Name: "name", Type: "string"},
		{Name: "score", Type: "number"},
	}
	if !reflect.DeepEqual(result.Schema.Fields, wantFields) {
		t.Errorf("Schema fields = %v, want %v", result.Schema.Fields, wantFields)
	}
	if result.Schema.Raw == nil {
		t.Error("Schema should carry the raw descriptor")
	}

	want := []FlatRecord{
		{"id": int64(1), "name": "alpha", "score": 9.5},
		{"id": int64(2), "name": "beta", "score": nil},
	}
	if !reflect.DeepEqual(result.Rows, want) {
		t.Errorf("Rows = %v, want %v", result.Rows, want)
	}
}

func TestDecodeArrow_StructColumnFlattening(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "arrow_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	locType := arrow.StructOf(
		arrow.Field{Name: "city", Type: arrow.BinaryTypes.String},
		arrow.Field{Name: "zip", Type: arrow.PrimitiveTypes.Int32},
	)
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "location", Type: locType},
	}, nil)

	path := filepath.Join(tmpDir, "nested.arrow")
	writeArrowFile(t, path, schema, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Int64Builder).Append(1)
		sb := b.Field(1).(*array.StructBuilder)
		sb.Append(true)
		sb.FieldBuilder(0).(*array.StringBuilder).Append("Oslo")
		sb.FieldBuilder(1).(*array.Int32Builder).Append(150)
	})

	result, err := DecodeArrow(path)
	if err != nil {
		t.Fatalf("DecodeArrow failed: %v", err)
	}

	wantFields := []Field{
		{Name: "id", Type: "integer"},
		{Name: "location", Type: "record"},
	}
	if !reflect.DeepEqual(result.Schema.Fields, wantFields) {
		t.Errorf("Schema fields = %v, want %v", result.Schema.Fields, wantFields)
	}

	want := []FlatRecord{
		{"id": int64(1), "city": "Oslo", "zip": int32(150)},
	}
	if !reflect.DeepEqual(result.Rows, want) {
		t.Errorf("Rows = %v, want %v", result.Rows, want)
	}
}

func TestDecodeArrow_GzipCompressed(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "arrow_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
	}, nil)

	plainPath := filepath.Join(tmpDir, "data.arrow")
	writeArrowFile(t, plainPath, schema, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2}, nil)
	})

	raw, err := os.ReadFile(plainPath)
	if err != nil {
		t.Fatalf("Failed to read arrow file: %v", err)
	}
	var compressed bytes.Buffer
	gw := gzip.NewWriter(&compressed)
	if _, err := gw.Write(raw); err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}

	path := filepath.Join(tmpDir, "data.arrow.gz")
	if err := os.WriteFile(path, compressed.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	result, err := DecodeArrow(path)
	if err != nil {
		t.Fatalf("DecodeArrow failed on compressed file: %v", err)
	}
	want := []FlatRecord{{"id": int64(1)}, {"id": int64(2)}}
	if !reflect.DeepEqual(result.Rows, want) {
		t.Errorf("Rows = %v, want %v", result.Rows, want)
	}
}

func TestDecodeArrow_InvalidFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "arrow_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "broken.arrow")
	if err := os.WriteFile(path, []byte("not arrow"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := DecodeArrow(path); err == nil {
		t.Error("Expected error for invalid file")
	}
}
