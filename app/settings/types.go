package settings

// Settings are the user-tunable preview options, persisted as YAML next to
// the binary. Zero values fall back to defaults at load time.
type Settings struct {
	// Charset is the fixed text encoding used by the passthrough reader
	Charset string `json:"charset"`
	// CreateJSONFiles persists decoded rows as a <basename>.json companion
	CreateJSONFiles bool `json:"createJsonFiles"`
	// CreateSchemaJSON persists the decoded schema as <basename>.schema.json
	CreateSchemaJSON bool `json:"createSchemaJson"`
	// CacheSizeLimitMB bounds the preview payload cache
	CacheSizeLimitMB int `json:"cacheSizeLimitMb"`
	// RowBatchSize is the number of rows per progressive publish batch
	RowBatchSize int `json:"rowBatchSize"`
	// MaxDirectoryFiles caps folder discovery results
	MaxDirectoryFiles int `json:"maxDirectoryFiles"`

	WindowWidth  int `json:"windowWidth"`
	WindowHeight int `json:"windowHeight"`

	// InstanceID is a stable per-installation identifier
	InstanceID string `json:"instanceId"`
}

var defaultSettings = Settings{
	Charset:           "utf-8",
	CreateJSONFiles:   false,
	CreateSchemaJSON:  false,
	CacheSizeLimitMB:  256,
	RowBatchSize:      1024,
	MaxDirectoryFiles: 1000,
	WindowWidth:       1024,
	WindowHeight:      768,
}

// DefaultSettings returns a copy of the built-in defaults
func DefaultSettings() Settings {
	return defaultSettings
}

// CacheManager lets the settings service react to setting changes that
// affect app-owned caches, without importing the app package.
type CacheManager interface {
	ClearPreviewCache()
	UpdateCacheSize()
}
