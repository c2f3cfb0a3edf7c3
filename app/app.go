package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"datapreview/app/cache"
	"datapreview/app/decoder"
	"datapreview/app/settings"
)

// App struct
type App struct {
	ctx context.Context

	// publisher pushes preview messages to the rendering surface; swapped
	// for a capture implementation in tests
	publisher Publisher

	// payload cache keyed by derived companion path
	previewCache *cache.Cache

	// settings snapshot taken at startup; refreshed on settings change
	settingsMu sync.RWMutex
	settings   settings.Settings

	// last successfully loaded view config
	viewMu     sync.RWMutex
	activeView *ViewConfig

	// clipboard init
	clipOnce sync.Once
	clipOK   bool
}

// NewApp creates a new App application struct
func NewApp() *App {
	current := settings.GetEffectiveSettings()
	cacheSizeBytes := int64(current.CacheSizeLimitMB) * 1024 * 1024

	a := &App{
		previewCache: cache.NewCache(cacheSizeBytes),
		settings:     current,
	}
	a.publisher = &runtimePublisher{app: a}
	return a
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.previewCache.SetLogger(a)
}

// Ctx returns the app context
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Log emits a structured log event to the frontend console window
func (a *App) Log(level, message string) {
	if a == nil || a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, "log", map[string]any{
		"level":   level,
		"message": message,
	})
}

// currentSettings returns the settings snapshot (thread-safe)
func (a *App) currentSettings() settings.Settings {
	a.settingsMu.RLock()
	defer a.settingsMu.RUnlock()
	return a.settings
}

// ClearPreviewCache drops all cached preview payloads. Called by the
// settings service when companion-file settings change.
func (a *App) ClearPreviewCache() {
	a.settingsMu.Lock()
	a.settings = settings.GetEffectiveSettings()
	a.settingsMu.Unlock()

	if a.previewCache != nil {
		a.previewCache.Clear()
	}
}

// UpdateCacheSize resizes the preview cache to the configured limit.
func (a *App) UpdateCacheSize() {
	current := settings.GetEffectiveSettings()
	a.settingsMu.Lock()
	a.settings = current
	a.settingsMu.Unlock()

	if a.previewCache != nil {
		a.previewCache.Resize(int64(current.CacheSizeLimitMB) * 1024 * 1024)
	}
}

// CacheStatsResponse contains cache statistics for the frontend
type CacheStatsResponse struct {
	TotalSize    int64   `json:"totalSize"`
	MaxSize      int64   `json:"maxSize"`
	UsagePercent float64 `json:"usagePercent"`
	EntryCount   int     `json:"entryCount"`
}

// GetCacheStats returns the current cache statistics for the frontend
func (a *App) GetCacheStats() CacheStatsResponse {
	if a.previewCache == nil {
		return CacheStatsResponse{}
	}
	stats := a.previewCache.GetCacheStats()
	return CacheStatsResponse{
		TotalSize:    stats.TotalSize,
		MaxSize:      stats.MaxSize,
		UsagePercent: stats.UsagePercent,
		EntryCount:   stats.TotalEntries,
	}
}

// OpenDataFile shows an open dialog filtered to supported data files and
// previews the chosen file. Returns the chosen path ("" on cancel).
func (a *App) OpenDataFile() (string, error) {
	if a == nil || a.ctx == nil {
		return "", fmt.Errorf("app context not initialised")
	}

	pattern := ""
	for i, ext := range decoder.SupportedExtensions() {
		if i > 0 {
			pattern += ";"
		}
		pattern += "*." + ext
	}

	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Open Data File",
		Filters: []runtime.FileFilter{
			{DisplayName: "Data Files", Pattern: pattern},
			{DisplayName: "All Files", Pattern: "*.*"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		// user cancelled
		return "", nil
	}

	if _, err := a.PreviewFile(PreviewRequest{FilePath: path}); err != nil {
		return path, err
	}
	return path, nil
}

// ListDataFiles discovers previewable data files under a folder for the
// frontend file picker.
func (a *App) ListDataFiles(rootPath string) ([]string, error) {
	files, err := decoder.DiscoverDataFiles(rootPath, a.currentSettings().MaxDirectoryFiles)
	if err != nil {
		a.Log("error", fmt.Sprintf("Failed to list data files in %s: %v", rootPath, err))
		return nil, err
	}
	return files, nil
}
