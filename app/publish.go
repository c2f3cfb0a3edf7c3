package app

import (
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"datapreview/app/decoder"
)

// PreviewMessage is the structured payload pushed to the rendering surface.
// Partial messages arrive while a progressive decode is in flight; exactly
// one final authoritative message is published per decode.
type PreviewMessage struct {
	FileName   string               `json:"fileName"`
	SourceID   string               `json:"sourceId"`
	Config     map[string]any       `json:"config,omitempty"`
	Schema     *decoder.Schema      `json:"schema,omitempty"`
	TableNames []string             `json:"tableNames,omitempty"`
	Table      string               `json:"table,omitempty"`
	Rows       []decoder.FlatRecord `json:"rows,omitempty"`
	Text       string               `json:"text,omitempty"`
	RowCount   int                  `json:"rowCount"`
	Final      bool                 `json:"final"`
}

// Publisher pushes preview messages to the display surface. The production
// implementation emits Wails runtime events; tests substitute a capturing one.
type Publisher interface {
	PublishPartial(msg *PreviewMessage)
	PublishFinal(msg *PreviewMessage)
}

// runtimePublisher emits preview messages as Wails runtime events consumed
// by the webview frontend.
type runtimePublisher struct {
	app *App
}

func (p *runtimePublisher) PublishPartial(msg *PreviewMessage) {
	if p.app == nil || p.app.ctx == nil {
		return
	}
	msg.Final = false
	runtime.EventsEmit(p.app.ctx, "preview:partial", msg)
}

func (p *runtimePublisher) PublishFinal(msg *PreviewMessage) {
	if p.app == nil || p.app.ctx == nil {
		return
	}
	msg.Final = true
	runtime.EventsEmit(p.app.ctx, "preview:data", msg)
}
