package decoder

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// CompressionType represents the compression format of a source file
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

// String returns the string representation of CompressionType
func (ct CompressionType) String() string {
	switch ct {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

// Magic byte signatures for compression detection
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68} // "BZh"
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// DetectCompressionByMagic reads the first few bytes of a file and detects
// the compression type, if any.
func DetectCompressionByMagic(filePath string) (CompressionType, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return CompressionNone, err
	}
	defer f.Close()

	// XZ has the longest magic (6 bytes)
	header := make([]byte, 6)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return CompressionNone, err
	}

	if n >= 2 && bytes.HasPrefix(header, gzipMagic) {
		return CompressionGzip, nil
	}
	if n >= 3 && bytes.HasPrefix(header, bzip2Magic) {
		return CompressionBzip2, nil
	}
	if n >= 6 && bytes.HasPrefix(header, xzMagic) {
		return CompressionXZ, nil
	}

	return CompressionNone, nil
}

// ReadSource reads a source file, transparently decompressing it when needed.
// If decompression fails mid-stream, partial data is returned together with a
// warning message instead of an error.
func ReadSource(filePath string) (data []byte, warning string, err error) {
	if filePath == "" {
		return nil, "", fmt.Errorf("file path is empty")
	}

	_, compressionType := DetectKindAndCompression(filePath)
	if compressionType == CompressionNone {
		data, err = os.ReadFile(filePath)
		return data, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var reader io.Reader
	switch compressionType {
	case CompressionGzip:
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader

	case CompressionBzip2:
		reader = bzip2.NewReader(f)

	case CompressionXZ:
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create xz reader: %w", err)
		}
		reader = xzReader

	default:
		return nil, "", fmt.Errorf("unsupported compression type: %v", compressionType)
	}

	var buf bytes.Buffer
	_, decompressErr := io.Copy(&buf, reader)
	data = buf.Bytes()

	if decompressErr != nil {
		if len(data) == 0 {
			return nil, "", fmt.Errorf("decompression failed: %w", decompressErr)
		}
		warning = fmt.Sprintf("Decompression incomplete: %v. Some data may be missing.", decompressErr)
	}

	return data, warning, nil
}
