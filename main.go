package main

import (
	"context"
	"embed"
	"runtime"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"datapreview/app"
	"datapreview/app/settings"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	appInstance := app.NewApp()
	settingsService := settings.NewSettingsService()
	settingsService.SetCacheManager(appInstance)

	emit := func(event string) func(*menu.CallbackData) {
		return func(_ *menu.CallbackData) {
			if ctx := appInstance.Ctx(); ctx != nil {
				wruntime.EventsEmit(ctx, event)
			}
		}
	}

	AppMenu := menu.NewMenu()
	if runtime.GOOS == "darwin" {
		AppMenu.Append(menu.AppMenu())
	}

	FileMenu := AppMenu.AddSubmenu("File")
	FileMenu.AddText("Open Data File", keys.CmdOrCtrl("o"), emit("menu:open"))
	FileMenu.AddText("Open Folder", keys.Combo("o", keys.CmdOrCtrlKey, keys.ShiftKey), emit("menu:openFolder"))
	FileMenu.AddSeparator()
	FileMenu.AddText("Save View Config", keys.CmdOrCtrl("s"), emit("menu:saveViewConfig"))
	FileMenu.AddText("Load View Config", keys.CmdOrCtrl("l"), emit("menu:loadViewConfig"))
	FileMenu.AddSeparator()
	FileMenu.AddText("Refresh", keys.CmdOrCtrl("r"), emit("menu:refresh"))
	FileMenu.AddText("Settings", keys.CmdOrCtrl(","), emit("menu:settings"))

	EditMenu := AppMenu.AddSubmenu("Edit")
	EditMenu.AddText("Copy Rows", keys.Combo("c", keys.CmdOrCtrlKey, keys.ShiftKey), emit("menu:copyRows"))

	ViewMenu := AppMenu.AddSubmenu("View")
	ViewMenu.AddText("Toggle Schema Panel", keys.CmdOrCtrl("e"), emit("menu:toggleSchema"))
	ViewMenu.AddText("Toggle Console", keys.CmdOrCtrl("`"), emit("menu:toggleConsole"))

	HelpMenu := AppMenu.AddSubmenu("Help")
	HelpMenu.AddText("About", nil, emit("menu:about"))

	width, height := settingsService.GetSavedWindowSize()

	err := wails.Run(&options.App{
		Title:     "Data Preview",
		Width:     width,
		Height:    height,
		MinWidth:  400,
		MinHeight: 300,
		Menu:      AppMenu,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			appInstance.Startup(ctx)
			settingsService.Startup(ctx)
			if err := settingsService.EnsureInstanceID(); err != nil {
				println("Warning: Failed to generate instance ID:", err.Error())
			}
		},
		Bind: []interface{}{
			appInstance,
			settingsService,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
