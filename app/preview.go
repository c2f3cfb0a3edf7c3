package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"datapreview/app/decoder"
	"datapreview/app/sink"
)

// PreviewRequest asks for a preview of a data file, optionally selecting a
// table (sheet) for multi-table sources.
type PreviewRequest struct {
	FilePath string `json:"filePath"`
	Table    string `json:"table"`
}

// PreviewSummary reports the outcome of a preview request to the frontend.
// For asynchronous decodes the rows arrive through preview events instead.
type PreviewSummary struct {
	FileName   string   `json:"fileName"`
	SourceID   string   `json:"sourceId"`
	Kind       string   `json:"kind"`
	RowCount   int      `json:"rowCount"`
	TableNames []string `json:"tableNames,omitempty"`
	Table      string   `json:"table,omitempty"`
	FromCache  bool     `json:"fromCache"`
	Async      bool     `json:"async"`
}

// PreviewFile decodes a data file and publishes its rows, schema and table
// metadata to the display surface. Unsupported formats and missing files are
// reported as user-visible messages, not failures; decode errors are surfaced
// to the caller and to the console, never fatal to the session.
//
// Concurrent requests for the same file interleave independently; there is no
// deduplication or cancellation.
func (a *App) PreviewFile(req PreviewRequest) (*PreviewSummary, error) {
	if req.FilePath == "" {
		return nil, fmt.Errorf("file path is empty")
	}

	fileName := filepath.Base(req.FilePath)
	if _, err := os.Stat(req.FilePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.Log("error", fmt.Sprintf("File not found: %s", req.FilePath))
			return &PreviewSummary{FileName: fileName}, nil
		}
		return nil, err
	}

	kind, _ := decoder.DetectKindAndCompression(req.FilePath)
	if kind == decoder.KindUnknown {
		a.Log("warning", fmt.Sprintf("Unsupported data format: %s", fileName))
		return &PreviewSummary{FileName: fileName}, nil
	}

	sourceID := uuid.NewString()
	cacheKey, sourceHash := a.previewCacheKey(req.FilePath, req.Table)

	// A cached final payload short-circuits the whole decode
	if msg, ok := a.cachedMessage(cacheKey, sourceHash); ok {
		msg.SourceID = sourceID
		a.publisher.PublishFinal(msg)
		return &PreviewSummary{
			FileName:   fileName,
			SourceID:   sourceID,
			Kind:       kind.String(),
			RowCount:   msg.RowCount,
			TableNames: msg.TableNames,
			Table:      msg.Table,
			FromCache:  true,
		}, nil
	}

	switch kind {
	case decoder.KindAvro:
		events := decoder.DecodeAvroStream(req.FilePath, a.currentSettings().RowBatchSize)
		go a.consumeAvroEvents(req.FilePath, sourceID, cacheKey, sourceHash, events)
		return &PreviewSummary{
			FileName: fileName,
			SourceID: sourceID,
			Kind:     kind.String(),
			Async:    true,
		}, nil

	case decoder.KindArrow:
		result, err := decoder.DecodeArrow(req.FilePath)
		if err != nil {
			a.Log("error", fmt.Sprintf("Failed to decode %s: %v", fileName, err))
			return nil, err
		}
		// Schema is reported before the rows arrive
		a.publisher.PublishPartial(&PreviewMessage{
			FileName: fileName,
			SourceID: sourceID,
			Config:   a.activeViewSettings(),
			Schema:   result.Schema,
		})
		return a.publishResult(req.FilePath, sourceID, cacheKey, sourceHash, req.Table, result)

	case decoder.KindBinarySpreadsheet, decoder.KindTextSpreadsheet:
		result, err := decoder.DecodeSpreadsheet(req.FilePath, kind, req.Table)
		if err != nil {
			a.Log("error", fmt.Sprintf("Failed to decode %s: %v", fileName, err))
			return nil, err
		}
		return a.publishResult(req.FilePath, sourceID, cacheKey, sourceHash, req.Table, result)

	default:
		result, err := decoder.DecodeText(req.FilePath)
		if err != nil {
			a.Log("error", fmt.Sprintf("Failed to read %s: %v", fileName, err))
			return nil, err
		}
		return a.publishResult(req.FilePath, sourceID, cacheKey, sourceHash, req.Table, result)
	}
}

// RefreshPreview drops every cached payload derived from the file and decodes
// it again, bypassing the cache entirely.
func (a *App) RefreshPreview(req PreviewRequest) (*PreviewSummary, error) {
	if a.previewCache != nil && req.FilePath != "" {
		a.previewCache.InvalidateSource(req.FilePath)
	}
	return a.PreviewFile(req)
}

// publishResult publishes the final message for a synchronous decode and
// caches the payload.
func (a *App) publishResult(filePath, sourceID, cacheKey, sourceHash, table string, result *decoder.Result) (*PreviewSummary, error) {
	if result.Warning != "" {
		a.Log("warning", result.Warning)
	}

	fileName := filepath.Base(filePath)
	msg := &PreviewMessage{
		FileName: fileName,
		SourceID: sourceID,
		Config:   a.activeViewSettings(),
		Schema:   result.Schema,
		Rows:     result.Rows,
		Text:     result.Text,
		RowCount: len(result.Rows),
	}
	if result.Tables != nil {
		msg.TableNames = result.Tables.Names
		msg.Table = result.Tables.Selected
	} else {
		msg.Table = table
	}

	a.publisher.PublishFinal(msg)
	a.storeMessage(cacheKey, filePath, sourceHash, msg)

	return &PreviewSummary{
		FileName:   fileName,
		SourceID:   sourceID,
		Kind:       result.Kind.String(),
		RowCount:   msg.RowCount,
		TableNames: msg.TableNames,
		Table:      msg.Table,
	}, nil
}

// consumeAvroEvents drives a progressive Avro decode: a schema-only partial
// as soon as the schema arrives, incremental partials per row batch, then the
// single final message plus optional companion file writes.
func (a *App) consumeAvroEvents(filePath, sourceID, cacheKey, sourceHash string, events <-chan decoder.Event) {
	fileName := filepath.Base(filePath)

	var schema *decoder.Schema
	var soFar []decoder.FlatRecord

	for ev := range events {
		switch ev.Type {
		case decoder.EventSchema:
			schema = ev.Schema
			a.publisher.PublishPartial(&PreviewMessage{
				FileName: fileName,
				SourceID: sourceID,
				Config:   a.activeViewSettings(),
				Schema:   schema,
			})

		case decoder.EventRows:
			soFar = append(soFar, decoder.FlattenAll(ev.Rows)...)
			a.publisher.PublishPartial(&PreviewMessage{
				FileName: fileName,
				SourceID: sourceID,
				Config:   a.activeViewSettings(),
				Schema:   schema,
				Rows:     soFar,
				RowCount: len(soFar),
			})

		case decoder.EventError:
			a.Log("error", fmt.Sprintf("Failed to decode %s: %v", fileName, ev.Err))
			return

		case decoder.EventComplete:
			a.writeCompanions(filePath, ev.Flat, ev.Schema)

			msg := &PreviewMessage{
				FileName: fileName,
				SourceID: sourceID,
				Config:   a.activeViewSettings(),
				Schema:   ev.Schema,
				Rows:     ev.Flat,
				RowCount: len(ev.Flat),
			}
			a.publisher.PublishFinal(msg)
			a.storeMessage(cacheKey, filePath, sourceHash, msg)
		}
	}
}

// writeCompanions persists rows and schema as companion JSON files when the
// corresponding settings are enabled. Failures are surfaced as console
// messages and never affect the publish path.
func (a *App) writeCompanions(filePath string, rows []decoder.FlatRecord, schema *decoder.Schema) {
	current := a.currentSettings()
	if !current.CreateJSONFiles && !current.CreateSchemaJSON {
		return
	}

	dataPath, schemaPath := sink.CompanionPaths(filePath)

	if current.CreateJSONFiles {
		if written, err := sink.WriteJSONIfAbsent(dataPath, rows); err != nil {
			a.Log("error", fmt.Sprintf("Failed to save %s: %v", filepath.Base(dataPath), err))
		} else if written {
			a.Log("info", fmt.Sprintf("Saved rows to %s", filepath.Base(dataPath)))
		}
	}

	if current.CreateSchemaJSON && schema != nil && schema.Raw != nil {
		if written, err := sink.WriteJSONIfAbsent(schemaPath, schema.Raw); err != nil {
			a.Log("error", fmt.Sprintf("Failed to save %s: %v", filepath.Base(schemaPath), err))
		} else if written {
			a.Log("info", fmt.Sprintf("Saved schema to %s", filepath.Base(schemaPath)))
		}
	}
}

// previewCacheKey derives the cache key for a preview payload from the
// companion data path plus the selected table, and hashes the source content
// so edits to the file invalidate the entry.
func (a *App) previewCacheKey(filePath, table string) (key, sourceHash string) {
	dataPath, _ := sink.CompanionPaths(filePath)
	key = fmt.Sprintf("preview:%s::table:%s", dataPath, table)
	sourceHash, err := CalculateFileHash(filePath)
	if err != nil {
		// unhashable sources are still previewable, just uncacheable
		return key, ""
	}
	return key, sourceHash
}

func (a *App) cachedMessage(key, sourceHash string) (*PreviewMessage, bool) {
	if a.previewCache == nil || sourceHash == "" {
		return nil, false
	}
	data, ok := a.previewCache.Get(key, sourceHash)
	if !ok {
		return nil, false
	}
	var msg PreviewMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, false
	}
	return &msg, true
}

func (a *App) storeMessage(key, sourcePath, sourceHash string, msg *PreviewMessage) {
	if a.previewCache == nil || sourceHash == "" {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	a.previewCache.Store(key, sourcePath, sourceHash, data)
}
