package decoder

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeText(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "text_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	content := "id,name\n1,alpha\n2,beta\n"
	path := filepath.Join(tmpDir, "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	result, err := DecodeText(path)
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if result.Kind != KindText {
		t.Errorf("Expected KindText, got %v", result.Kind)
	}
	if result.Text != content {
		t.Errorf("Expected %q, got %q", content, result.Text)
	}
	if result.Rows != nil {
		t.Error("Passthrough text should not carry parsed rows")
	}
}

func TestDecodeText_Empty(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "text_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := DecodeText(path); err == nil {
		t.Error("Expected error for empty file")
	}
}

func TestDecodeText_Missing(t *testing.T) {
	if _, err := DecodeText("/nonexistent/data.csv"); err == nil {
		t.Error("Expected error for missing file")
	}
}
