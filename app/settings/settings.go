package settings

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GetEffectiveSettings returns the effective settings (defaults overlaid with
// file overrides if any). If anything goes wrong, it returns defaults.
func GetEffectiveSettings() Settings {
	settings := defaultSettings
	path, err := settingsFilePath()
	if err != nil {
		return settings
	}
	b, err := os.ReadFile(path)
	if err != nil {
		// no file or unreadable -> defaults
		return settings
	}
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return settings
	}
	applyOverrides(&settings, m)
	return settings
}

// applyOverrides overlays on-disk values onto settings. Keys are checked for
// presence individually so absent keys keep their defaults.
func applyOverrides(settings *Settings, m map[string]any) {
	if v, ok := m["charset"]; ok {
		if vs, oks := v.(string); oks && vs != "" {
			settings.Charset = vs
		}
	}
	if v, ok := m["create_json_files"]; ok {
		if vb, okb := v.(bool); okb {
			settings.CreateJSONFiles = vb
		}
	}
	if v, ok := m["create_schema_json"]; ok {
		if vb, okb := v.(bool); okb {
			settings.CreateSchemaJSON = vb
		}
	}
	if v, ok := m["cache_size_limit_mb"]; ok {
		if vi, oki := v.(int); oki && vi > 0 {
			settings.CacheSizeLimitMB = vi
		}
	}
	if v, ok := m["row_batch_size"]; ok {
		if vi, oki := v.(int); oki && vi > 0 {
			settings.RowBatchSize = vi
		}
	}
	if v, ok := m["max_directory_files"]; ok {
		if vi, oki := v.(int); oki && vi >= 10 {
			settings.MaxDirectoryFiles = vi
		}
	}
	if v, ok := m["window_width"]; ok {
		if vi, oki := v.(int); oki && vi >= 400 {
			settings.WindowWidth = vi
		}
	}
	if v, ok := m["window_height"]; ok {
		if vi, oki := v.(int); oki && vi >= 300 {
			settings.WindowHeight = vi
		}
	}
	if v, ok := m["instance_id"]; ok {
		if vs, oks := v.(string); oks {
			settings.InstanceID = vs
		}
	}
}

func settingsFilePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(exe)
	return filepath.Join(dir, "datapreview.yml"), nil
}
