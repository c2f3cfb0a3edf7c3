package decoder

import (
	"path/filepath"
	"sort"
	"strings"
)

// kindByExtension is the closed set of recognized data file extensions.
// Everything else is KindUnknown, which callers report as an unsupported
// format without failing the session.
var kindByExtension = map[string]Kind{
	// plain text passed through to the display surface unparsed
	".csv":  KindText,
	".tsv":  KindText,
	".txt":  KindText,
	".tab":  KindText,
	".json": KindText,

	// binary workbook formats opened from the file path
	".xls":  KindBinarySpreadsheet,
	".xlsb": KindBinarySpreadsheet,
	".xlsx": KindBinarySpreadsheet,
	".xlsm": KindBinarySpreadsheet,
	".slk":  KindBinarySpreadsheet,
	".ods":  KindBinarySpreadsheet,
	".prn":  KindBinarySpreadsheet,

	// text-encoded workbook formats opened from a raw buffer
	".dif":  KindTextSpreadsheet,
	".xml":  KindTextSpreadsheet,
	".html": KindTextSpreadsheet,

	".arrow": KindArrow,
	".avro":  KindAvro,
}

// compressionExtensions maps compression extensions to their CompressionType
var compressionExtensions = map[string]CompressionType{
	".gz":  CompressionGzip,
	".bz2": CompressionBzip2,
	".xz":  CompressionXZ,
}

// DetectKind determines the decoder kind from the file extension alone,
// case-insensitively. It does not look at file content and does not handle
// compressed files; use DetectKindAndCompression for those.
func DetectKind(filePath string) Kind {
	if filePath == "" {
		return KindUnknown
	}
	ext := strings.ToLower(filepath.Ext(filePath))
	return kindByExtension[ext]
}

// DetectKindAndCompression determines both the decoder kind and compression
// type. It first checks for double extensions (e.g. .csv.gz) and falls back
// to magic byte detection when no compression extension is present.
func DetectKindAndCompression(filePath string) (Kind, CompressionType) {
	if filePath == "" {
		return KindUnknown, CompressionNone
	}

	lower := strings.ToLower(filePath)

	compressionType := CompressionNone
	innerPath := lower
	for ext, ct := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			compressionType = ct
			innerPath = strings.TrimSuffix(lower, ext)
			break
		}
	}

	if compressionType == CompressionNone {
		if magicType, err := DetectCompressionByMagic(filePath); err == nil && magicType != CompressionNone {
			// Magic-byte hits keep the original extension for kind detection
			return DetectKind(filePath), magicType
		}
	}

	return DetectKind(innerPath), compressionType
}

// SupportedExtensions returns the recognized data file extensions without the
// leading dot, sorted, for dialog filters and directory discovery.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(kindByExtension))
	for ext := range kindByExtension {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)
	return exts
}

// SourceExtension returns the data file extension, lowercased, with any
// compression suffix stripped, e.g. "data.arrow.gz" -> ".arrow".
func SourceExtension(filePath string) string {
	return strings.ToLower(filepath.Ext(TrimCompressionSuffix(filePath)))
}

// TrimCompressionSuffix removes a trailing compression extension, if any.
// The remaining path keeps its original bytes; the suffix comparison is
// case-insensitive without lowering the whole path, so multi-byte runes
// earlier in the name never shift the cut point.
func TrimCompressionSuffix(filePath string) string {
	for ext := range compressionExtensions {
		if len(filePath) > len(ext) && strings.EqualFold(filePath[len(filePath)-len(ext):], ext) {
			return filePath[:len(filePath)-len(ext)]
		}
	}
	return filePath
}
