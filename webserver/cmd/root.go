package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/mordilloSan/appsettings/bridge/handlers"
	"github.com/mordilloSan/appsettings/bridge/userconfig"
	"github.com/mordilloSan/appsettings/common/config"
	"github.com/mordilloSan/appsettings/common/telemetry"
	"github.com/mordilloSan/appsettings/webserver/web"
)

// resolveHost overlays the command-line flags on the host file.
func resolveHost(cfg ServerConfig) (config.Host, error) {
	host, err := config.LoadHost(cfg.HostConfig)
	if err != nil {
		return host, err
	}
	if cfg.Port != 0 {
		host.Port = cfg.Port
	}
	if cfg.AppID != "" {
		host.AppID = cfg.AppID
	}
	if cfg.ConfigDir != "" {
		host.ConfigDir = cfg.ConfigDir
	}
	host.Verbose = host.Verbose || cfg.Verbose
	host.Telemetry.Traces = host.Telemetry.Traces || cfg.Traces
	host.Telemetry.Metrics = host.Telemetry.Metrics || cfg.Metrics
	return host, host.Validate()
}

func RunServer(cfg ServerConfig) {
	host, err := resolveHost(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// -------------------------------------------------------------------------
	// Logging (from flags)
	// -------------------------------------------------------------------------
	var levels []logger.Level
	if host.Verbose {
		levels = logger.AllLevels() // Includes DEBUG
	} else {
		levels = []logger.Level{logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel}
	}
	logger.Init(logger.Config{
		Levels: levels,
	})
	logger.InfoKV("server starting", "verbose", host.Verbose, "app_id", host.AppID)

	// -------------------------------------------------------------------------
	// Store + telemetry + dispatcher
	// -------------------------------------------------------------------------
	store := userconfig.NewStore(userconfig.AppDir{Identifier: host.AppID, Override: host.ConfigDir})
	if p, err := store.Path(); err != nil {
		logger.Warnf("settings path unavailable: %v", err)
	} else {
		logger.Infof("settings file: %s", p)
	}

	tel, err := telemetry.Setup(context.Background(), telemetry.Config{
		ServiceName:   "appsettings-webserver",
		EnableMetrics: host.Telemetry.Metrics,
		EnableTraces:  host.Telemetry.Traces,
	})
	if err != nil {
		logger.Errorf("telemetry setup failed: %v", err)
		os.Exit(1)
	}

	dispatcher := handlers.NewDispatcher(store, tel.Commands())

	router := web.BuildRouter(web.Config{
		Verbose:    host.Verbose,
		Dispatcher: dispatcher,
	})

	// -------------------------------------------------------------------------
	// HTTP server (loopback only)
	// -------------------------------------------------------------------------
	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", host.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.New(web.HTTPErrorLogAdapter{}, "", 0),
	}

	quit := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("HTTP server listening at http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server error: %v", err)
			os.Exit(1)
		}
		close(done)
	}()

	// -------------------------------------------------------------------------
	// Shutdown coordination
	// -------------------------------------------------------------------------
	select {
	case <-quit:
		logger.Infof("Shutdown signal received")
	case <-done:
		logger.Infof("HTTP server stopped, beginning shutdown...")
	}

	srv.SetKeepAlivesEnabled(false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warnf("Graceful HTTP shutdown timed out; forcing close of remaining connections.")
			if cerr := srv.Close(); cerr != nil && !errors.Is(cerr, http.ErrServerClosed) {
				logger.Warnf("HTTP server force-close error: %v", cerr)
			}
		} else {
			logger.Warnf("HTTP server shutdown error: %v", err)
		}
	} else {
		logger.Infof("HTTP server closed")
	}

	if host.Telemetry.Metrics {
		if rm, err := tel.Collect(ctx); err == nil {
			logger.InfoKV("final metrics", "scopes", len(rm.ScopeMetrics))
		}
	}
	if err := tel.Shutdown(ctx); err != nil {
		logger.Warnf("telemetry shutdown: %v", err)
	}

	logger.Infof("Server stopped.")
}
