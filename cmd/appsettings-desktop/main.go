package main

import (
	"context"
	"embed"
	"log"

	"github.com/mordilloSan/go-logger/logger"
	"github.com/spf13/pflag"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/mordilloSan/appsettings/bridge/handlers"
	"github.com/mordilloSan/appsettings/bridge/userconfig"
	"github.com/mordilloSan/appsettings/common/config"
	"github.com/mordilloSan/appsettings/common/telemetry"
	"github.com/mordilloSan/appsettings/desktop"
)

//go:embed all:frontend/dist
var assets embed.FS

// changedEvent is emitted to the front-end after every settings write.
const changedEvent = "config:changed"

func main() {
	hostConfig := pflag.String("config", "", "host configuration file (YAML or TOML)")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Parse()

	host, err := config.LoadHost(*hostConfig)
	if err != nil {
		log.Fatal(err)
	}

	levels := []logger.Level{logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel}
	if *verbose || host.Verbose {
		levels = logger.AllLevels()
	}
	logger.Init(logger.Config{Levels: levels})

	tel, err := telemetry.Setup(context.Background(), telemetry.Config{
		ServiceName:   "appsettings-desktop",
		EnableMetrics: host.Telemetry.Metrics,
		EnableTraces:  host.Telemetry.Traces,
	})
	if err != nil {
		log.Fatal(err)
	}

	store := userconfig.NewStore(userconfig.AppDir{Identifier: host.AppID, Override: host.ConfigDir})
	app := desktop.NewApp(handlers.NewDispatcher(store, tel.Commands()))
	app.OnChange = func(ctx context.Context, cfg userconfig.AppConfig) {
		runtime.EventsEmit(ctx, changedEvent, cfg)
	}

	err = wails.Run(&options.App{
		Title:  "appsettings " + config.Version,
		Width:  720,
		Height: 540,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.Startup,
		OnShutdown: func(ctx context.Context) {
			app.Shutdown(ctx)
			if err := tel.Shutdown(ctx); err != nil {
				logger.Warnf("telemetry shutdown: %v", err)
			}
		},
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		log.Fatal(err)
	}
}
