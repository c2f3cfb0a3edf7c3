package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SettingsService manages reading/writing settings from disk.
type SettingsService struct {
	ctx          context.Context
	cacheManager CacheManager
}

func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// SetCacheManager allows the main function to inject the cache manager
func (s *SettingsService) SetCacheManager(cm CacheManager) {
	s.cacheManager = cm
}

// Startup receives the Wails context
func (s *SettingsService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// GetSettings returns the effective settings for the frontend.
func (s *SettingsService) GetSettings() (Settings, error) {
	return GetEffectiveSettings(), nil
}

// SaveSettings saves only the values that differ from defaults into YAML in
// the binary directory, then propagates cache-affecting changes.
func (s *SettingsService) SaveSettings(in Settings) error {
	old := GetEffectiveSettings()
	cacheSizeChanged := old.CacheSizeLimitMB != in.CacheSizeLimitMB
	companionChanged := old.CreateJSONFiles != in.CreateJSONFiles ||
		old.CreateSchemaJSON != in.CreateSchemaJSON

	// Minimal map with only non-default values to avoid zero-value
	// serialization pitfalls
	data := make(map[string]any)
	if cs := strings.TrimSpace(in.Charset); cs != "" && cs != defaultSettings.Charset {
		data["charset"] = cs
	}
	if in.CreateJSONFiles != defaultSettings.CreateJSONFiles {
		data["create_json_files"] = in.CreateJSONFiles
	}
	if in.CreateSchemaJSON != defaultSettings.CreateSchemaJSON {
		data["create_schema_json"] = in.CreateSchemaJSON
	}
	if in.CacheSizeLimitMB > 0 && in.CacheSizeLimitMB != defaultSettings.CacheSizeLimitMB {
		data["cache_size_limit_mb"] = in.CacheSizeLimitMB
	}
	if in.RowBatchSize > 0 && in.RowBatchSize != defaultSettings.RowBatchSize {
		data["row_batch_size"] = in.RowBatchSize
	}

	maxDirFiles := in.MaxDirectoryFiles
	if maxDirFiles == 0 {
		maxDirFiles = old.MaxDirectoryFiles
	}
	if maxDirFiles != defaultSettings.MaxDirectoryFiles && maxDirFiles >= 10 {
		data["max_directory_files"] = maxDirFiles
	}

	// Window size is not visible in the settings dialog but must persist
	windowWidth := in.WindowWidth
	if windowWidth == 0 {
		windowWidth = old.WindowWidth
	}
	if windowWidth != defaultSettings.WindowWidth && windowWidth >= 400 {
		data["window_width"] = windowWidth
	}
	windowHeight := in.WindowHeight
	if windowHeight == 0 {
		windowHeight = old.WindowHeight
	}
	if windowHeight != defaultSettings.WindowHeight && windowHeight >= 300 {
		data["window_height"] = windowHeight
	}

	// Instance ID always persists once generated
	instanceID := strings.TrimSpace(in.InstanceID)
	if instanceID == "" {
		instanceID = strings.TrimSpace(old.InstanceID)
	}
	if instanceID != "" {
		data["instance_id"] = instanceID
	}

	path, err := settingsFilePath()
	if err != nil {
		return err
	}

	if len(data) == 0 {
		// Remove any existing file to reflect a defaults-only state
		if _, statErr := os.Stat(path); statErr == nil {
			_ = os.Remove(path)
		}
		s.propagate(cacheSizeChanged, companionChanged)
		return nil
	}

	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}

	s.propagate(cacheSizeChanged, companionChanged)
	return nil
}

func (s *SettingsService) propagate(cacheSizeChanged, companionChanged bool) {
	if s.cacheManager == nil {
		return
	}
	if cacheSizeChanged {
		s.cacheManager.UpdateCacheSize()
	}
	if companionChanged {
		// Cached payloads embed companion-write results; drop them so the
		// next preview honours the new setting
		s.cacheManager.ClearPreviewCache()
	}
}

// EnsureInstanceID generates and persists a stable installation identifier
// on first startup.
func (s *SettingsService) EnsureInstanceID() error {
	current := GetEffectiveSettings()
	if strings.TrimSpace(current.InstanceID) != "" {
		return nil
	}
	current.InstanceID = uuid.NewString()
	if err := s.SaveSettings(current); err != nil {
		return fmt.Errorf("failed to persist instance id: %w", err)
	}
	return nil
}

// GetSavedWindowSize returns the persisted window size, or defaults.
func (s *SettingsService) GetSavedWindowSize() (width, height int) {
	current := GetEffectiveSettings()
	return current.WindowWidth, current.WindowHeight
}

// SaveWindowSize persists the current window size.
func (s *SettingsService) SaveWindowSize(width, height int) error {
	current := GetEffectiveSettings()
	current.WindowWidth = width
	current.WindowHeight = height
	return s.SaveSettings(current)
}
