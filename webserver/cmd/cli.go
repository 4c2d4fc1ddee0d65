package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mordilloSan/appsettings/common/config"
)

// ServerConfig is the minimal runtime config passed to the server. Flags win
// over the host file; zero values fall back to it.
type ServerConfig struct {
	Port       int
	Verbose    bool
	HostConfig string
	AppID      string
	ConfigDir  string
	Traces     bool
	Metrics    bool
}

// test seam (override in tests)
var runServerFunc = RunServer

// StartServer is the CLI entrypoint (called from main.go).
func StartServer() {
	if len(os.Args) < 2 {
		printGeneralUsage()
		return
	}

	switch os.Args[1] {
	case "-h", "--help", "help":
		printGeneralUsage()
		return
	case "version":
		fmt.Printf("appsettings-webserver %s %s %s\n", config.Version, config.CommitSHA, config.BuildTime)
		return
	case "run":
		runCmd := pflag.NewFlagSet("run", pflag.ContinueOnError)

		var cfg ServerConfig
		runCmd.IntVarP(&cfg.Port, "port", "p", 0, fmt.Sprintf("HTTP server port (1-65535, default %d)", config.DefaultPort))
		runCmd.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose logging")
		runCmd.StringVar(&cfg.HostConfig, "config", "", "host configuration file (YAML or TOML)")
		runCmd.StringVar(&cfg.AppID, "app-id", "", "application identifier naming the settings directory")
		runCmd.StringVar(&cfg.ConfigDir, "dir", "", "settings directory (overrides app-id resolution)")
		runCmd.BoolVar(&cfg.Traces, "trace", false, "print command spans to stdout")
		runCmd.BoolVar(&cfg.Metrics, "metrics", false, "record command metrics")

		runCmd.Usage = func() {
			fmt.Fprintf(os.Stderr, "appsettings Web Server %s\n", config.Version)
			fmt.Fprintln(os.Stderr, "\nUsage:")
			fmt.Fprintln(os.Stderr, "  appsettings-webserver run [flags]")
			fmt.Fprintln(os.Stderr, "\nFlags:")
			runCmd.PrintDefaults()
		}

		if err := runCmd.Parse(os.Args[2:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return
			}
			os.Exit(2)
		}

		// port 0 means "use host file or default"
		if cfg.Port < 0 || cfg.Port > 65535 {
			fmt.Fprintln(os.Stderr, "invalid --port: must be between 1 and 65535")
			os.Exit(2)
		}

		runServerFunc(cfg)

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %q\n\n", os.Args[1])
		printGeneralUsage()
		return
	}
}

func printGeneralUsage() {
	fmt.Fprintf(os.Stderr, `appsettings Web Server %s

Usage:
  appsettings-webserver <command> [flags]

Commands:
  run         Run the HTTP/WebSocket command relay
  version     Print build information
  help        Show this help

Examples:
  appsettings-webserver run
  appsettings-webserver run --port 8095 --verbose --dir /tmp/settings

Use "appsettings-webserver <command> -h" for more info about a command.
`, config.Version)
}
