package app

import (
	"encoding/csv"
	"fmt"
	"strings"

	clipboard "golang.design/x/clipboard"
)

// maxClipboardSize guards against runaway copies of very large previews
const maxClipboardSize = 100 * 1024 * 1024

// CopyRowsRequest carries the projected rows for a backend clipboard copy
type CopyRowsRequest struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// CopyRowsResult reports the number of data rows copied
type CopyRowsResult struct {
	RowsCopied int `json:"rowsCopied"`
}

// CopyRowsToClipboard renders the selected preview rows as CSV text and puts
// them on the system clipboard.
func (a *App) CopyRowsToClipboard(req CopyRowsRequest) (*CopyRowsResult, error) {
	if a == nil {
		return nil, fmt.Errorf("app not initialised")
	}

	a.clipOnce.Do(func() {
		if err := clipboard.Init(); err == nil {
			a.clipOK = true
		} else {
			a.clipOK = false
			a.Log("error", fmt.Sprintf("Clipboard init failed: %v", err))
		}
	})
	if !a.clipOK {
		return nil, fmt.Errorf("clipboard not available")
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if len(req.Headers) > 0 {
		if err := w.Write(req.Headers); err != nil {
			return nil, err
		}
	}
	for _, row := range req.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	if err := safeClipboardWrite(clipboard.FmtText, []byte(sb.String())); err != nil {
		a.Log("error", fmt.Sprintf("Clipboard write failed: %v", err))
		return nil, err
	}

	a.Log("info", fmt.Sprintf("Copied %d rows to clipboard", len(req.Rows)))
	return &CopyRowsResult{RowsCopied: len(req.Rows)}, nil
}

// safeClipboardWrite writes to the clipboard with panic recovery, since the
// clipboard backend can panic on some platforms.
func safeClipboardWrite(format clipboard.Format, data []byte) (err error) {
	if len(data) > maxClipboardSize {
		return fmt.Errorf("data too large for clipboard (%d bytes, max %d bytes). Try selecting fewer rows",
			len(data), maxClipboardSize)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write failed: %v", r)
		}
	}()

	clipboard.Write(format, data)
	return nil
}
