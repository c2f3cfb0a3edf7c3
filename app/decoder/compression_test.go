package decoder

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

func TestReadSource_Plain(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "readsource_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	content := "a,b,c\n1,2,3\n"
	path := filepath.Join(tmpDir, "plain.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, warning, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource failed: %v", err)
	}
	if warning != "" {
		t.Errorf("Unexpected warning: %q", warning)
	}
	if string(data) != content {
		t.Errorf("Expected %q, got %q", content, string(data))
	}
}

func TestReadSource_Gzip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "readsource_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	content := "a,b\n1,2\n"
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}

	path := filepath.Join(tmpDir, "data.csv.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, warning, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource failed: %v", err)
	}
	if warning != "" {
		t.Errorf("Unexpected warning: %q", warning)
	}
	if string(data) != content {
		t.Errorf("Expected %q, got %q", content, string(data))
	}
}

func TestReadSource_XZ(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "readsource_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	content := "x,y\n10,20\n"
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("Failed to create xz writer: %v", err)
	}
	if _, err := xw.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("Failed to close xz writer: %v", err)
	}

	path := filepath.Join(tmpDir, "data.csv.xz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, _, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource failed: %v", err)
	}
	if string(data) != content {
		t.Errorf("Expected %q, got %q", content, string(data))
	}
}

func TestReadSource_TruncatedGzip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "readsource_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(bytes.Repeat([]byte("row,row,row\n"), 2000)); err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}

	// Drop the trailer and part of the deflate stream
	truncated := buf.Bytes()[:buf.Len()/2]
	path := filepath.Join(tmpDir, "broken.csv.gz")
	if err := os.WriteFile(path, truncated, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, warning, err := ReadSource(path)
	if err != nil {
		t.Fatalf("Expected partial data, got error: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected partial data, got none")
	}
	if warning == "" {
		t.Error("Expected a warning for truncated input")
	}
}

func TestDetectCompressionByMagic(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "magic_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	tests := []struct {
		name    string
		content []byte
		want    CompressionType
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00}, CompressionGzip},
		{"bzip2", []byte("BZh91AY"), CompressionBzip2},
		{"xz", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0x00}, CompressionXZ},
		{"plain", []byte("a,b,c\n"), CompressionNone},
		{"short", []byte{0x1f}, CompressionNone},
		{"empty", []byte{}, CompressionNone},
	}

	for _, tt := range tests {
		path := filepath.Join(tmpDir, tt.name)
		if err := os.WriteFile(path, tt.content, 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		got, err := DetectCompressionByMagic(path)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}
