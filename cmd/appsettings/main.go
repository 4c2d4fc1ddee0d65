// Command appsettings reads and writes the per-user settings file from a
// terminal, using the same command surface as the desktop and web front-ends.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mordilloSan/go-logger/logger"
	"github.com/spf13/pflag"

	"github.com/mordilloSan/appsettings/bridge/handlers"
	cfgcmd "github.com/mordilloSan/appsettings/bridge/handlers/config"
	"github.com/mordilloSan/appsettings/bridge/userconfig"
	"github.com/mordilloSan/appsettings/common/config"
	"github.com/mordilloSan/appsettings/common/ipc"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	hostConfig string
	appID      string
	dir        string
	verbose    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("appsettings", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)

	var opts options
	fs.StringVar(&opts.hostConfig, "config", "", "host configuration file (YAML or TOML)")
	fs.StringVar(&opts.appID, "app-id", "", "application identifier naming the settings directory")
	fs.StringVar(&opts.dir, "dir", "", "settings directory (overrides app-id resolution)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr, fs)
		return exitUsage
	}
	sub, subArgs := rest[0], rest[1:]

	if sub == "version" {
		fmt.Fprintf(stdout, "appsettings %s %s %s\n", config.Version, config.CommitSHA, config.BuildTime)
		return exitOK
	}
	if sub == "help" {
		printUsage(stdout, fs)
		return exitOK
	}

	host, err := config.LoadHost(opts.hostConfig)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if opts.appID != "" {
		host.AppID = opts.appID
	}
	if opts.dir != "" {
		host.ConfigDir = opts.dir
	}

	levels := []logger.Level{logger.WarnLevel, logger.ErrorLevel}
	if opts.verbose || host.Verbose {
		levels = logger.AllLevels()
	}
	logger.Init(logger.Config{Levels: levels})

	store := userconfig.NewStore(userconfig.AppDir{Identifier: host.AppID, Override: host.ConfigDir})
	d := handlers.NewDispatcher(store, nil)

	if sub == "show" {
		return show(d, store, stdout, stderr)
	}

	command, cmdArgs, err := translate(sub, subArgs, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "appsettings: %v\n", err)
		return exitUsage
	}
	if command == "" {
		// local listing, no dispatch
		for _, name := range d.Registry().List() {
			fmt.Fprintln(stdout, name)
		}
		return exitOK
	}

	resp := d.Invoke(context.Background(), "cli", command, cmdArgs...)
	if !resp.OK() {
		fmt.Fprintf(stderr, "appsettings: %s\n", resp.Error)
		return exitFail
	}
	if err := printOutput(stdout, command, resp); err != nil {
		fmt.Fprintf(stderr, "appsettings: %v\n", err)
		return exitFail
	}
	return exitOK
}

// translate maps a CLI subcommand onto a command name and its string args.
// An empty command name means "list commands".
func translate(sub string, args []string, stdin io.Reader) (string, []string, error) {
	switch sub {
	case "get":
		return cfgcmd.CmdGetConfig, nil, nil
	case "delete":
		return cfgcmd.CmdDeleteConfig, nil, nil
	case "path":
		return cfgcmd.CmdGetConfigPath, nil, nil
	case "commands":
		return "", nil, nil
	case "set", "update":
		if len(args) != 1 {
			return "", nil, fmt.Errorf("%s expects one JSON argument or -", sub)
		}
		doc := args[0]
		if doc == "-" {
			b, err := io.ReadAll(stdin)
			if err != nil {
				return "", nil, fmt.Errorf("read stdin: %w", err)
			}
			doc = string(b)
		}
		if sub == "set" {
			return cfgcmd.CmdSetConfig, []string{doc}, nil
		}
		return cfgcmd.CmdUpdateConfig, []string{doc}, nil
	default:
		return "", nil, fmt.Errorf("unknown command %q", sub)
	}
}

func show(d *ipc.Dispatcher, store *userconfig.Store, stdout, stderr io.Writer) int {
	ctx := context.Background()
	var cfg userconfig.AppConfig
	if err := d.Invoke(ctx, "cli", cfgcmd.CmdGetConfig).Decode(&cfg); err != nil {
		fmt.Fprintf(stderr, "appsettings: %v\n", err)
		return exitFail
	}
	var p string
	if err := d.Invoke(ctx, "cli", cfgcmd.CmdGetConfigPath).Decode(&p); err != nil {
		fmt.Fprintf(stderr, "appsettings: %v\n", err)
		return exitFail
	}
	exists, _ := store.Exists()
	if err := renderShow(stdout, p, exists, cfg); err != nil {
		fmt.Fprintf(stderr, "appsettings: %v\n", err)
		return exitFail
	}
	return exitOK
}

func printOutput(w io.Writer, command string, resp ipc.Response) error {
	if len(resp.Output) == 0 {
		return nil
	}
	if command == cfgcmd.CmdGetConfigPath {
		var p string
		if err := resp.Decode(&p); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, p)
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Output, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `appsettings %s

Usage:
  appsettings [flags] <command> [arg]

Commands:
  get             Print the stored settings (defaults when none are saved)
  show            Print the stored settings as a styled table with lint warnings
  set <json|->    Replace the stored settings
  update <json|-> Merge the given keys into the stored settings
  delete          Remove the settings file
  path            Print the settings file path
  commands        List the registered command names
  version         Print build information

Flags:
%s`, config.Version, fs.FlagUsages())
}
