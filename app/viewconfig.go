package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ohler55/ojg/oj"
)

// ViewConfig is the persisted view state for a data file: which file it was
// saved for, opaque view settings owned by the frontend, and optionally the
// selected table for multi-table sources.
type ViewConfig struct {
	DataFileName string         `json:"dataFileName"`
	Config       map[string]any `json:"config"`
	DataTable    string         `json:"dataTable,omitempty"`
}

// SaveViewConfig writes the view configuration for the given open data file
// as pretty-printed JSON. Unlike companion files, view configs are meant to
// be updated, so an existing file is overwritten.
func (a *App) SaveViewConfig(openFilePath string, cfg ViewConfig, configPath string) error {
	if openFilePath == "" {
		return fmt.Errorf("no data file is open")
	}
	if configPath == "" {
		return fmt.Errorf("config path is empty")
	}

	cfg.DataFileName = filepath.Base(openFilePath)
	pretty := oj.JSON(cfg, 2)
	if err := os.WriteFile(configPath, []byte(pretty+"\n"), 0o644); err != nil {
		a.Log("error", fmt.Sprintf("Failed to save view config: %v", err))
		return err
	}

	a.viewMu.Lock()
	a.activeView = &cfg
	a.viewMu.Unlock()

	a.Log("info", fmt.Sprintf("Saved view config to %s", filepath.Base(configPath)))
	return nil
}

// LoadViewConfig loads a view configuration file and applies it to the open
// data file. A config recorded for a different file is rejected with a
// user-visible mismatch error and leaves the current view state unchanged.
func (a *App) LoadViewConfig(openFilePath string, configPath string) (*ViewConfig, error) {
	if openFilePath == "" {
		return nil, fmt.Errorf("no data file is open")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		a.Log("error", fmt.Sprintf("Failed to read view config: %v", err))
		return nil, err
	}

	var cfg ViewConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		a.Log("error", fmt.Sprintf("Invalid view config %s: %v", filepath.Base(configPath), err))
		return nil, err
	}

	openName := filepath.Base(openFilePath)
	if cfg.DataFileName != openName {
		err := fmt.Errorf("view config %s was saved for %s, not %s",
			filepath.Base(configPath), cfg.DataFileName, openName)
		a.Log("error", err.Error())
		return nil, err
	}

	a.viewMu.Lock()
	a.activeView = &cfg
	a.viewMu.Unlock()

	return &cfg, nil
}

// ActiveViewConfig returns the last loaded or saved view config (nil if none)
func (a *App) ActiveViewConfig() *ViewConfig {
	a.viewMu.RLock()
	defer a.viewMu.RUnlock()
	return a.activeView
}

// activeViewSettings returns the opaque view settings to attach to published
// preview messages.
func (a *App) activeViewSettings() map[string]any {
	a.viewMu.RLock()
	defer a.viewMu.RUnlock()
	if a.activeView == nil {
		return nil
	}
	return a.activeView.Config
}
