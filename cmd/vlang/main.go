// Package main provides the entry point for the vlang tool. It parses the
// global flags, loads the configuration and routes to the subcommand
// handlers in pkg/commands.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/commands"
	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	registry := commands.NewRegistry()
	usage := func() { cli.PrintUsage(stderr, "vlang", registry.CommandInfos()) }

	fs := flag.NewFlagSet("vlang", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage
	configPath := fs.String("config", "", "configuration file (yaml or json)")
	verbose := fs.Bool("verbose", false, "log progress")
	debug := fs.Bool("debug", false, "log debug detail")
	color := fs.String("color", "", "color mode: auto, always or never")
	showVersion := fs.Bool("version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.ExitOK
		}
		return cli.ExitUsage
	}

	rest := fs.Args()
	if *showVersion {
		rest = append([]string{"version"}, rest...)
	}
	if len(rest) == 0 {
		usage()
		return cli.ExitUsage
	}

	sub, subArgs := rest[0], rest[1:]
	if sub == "help" {
		usage()
		return cli.ExitOK
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *debug {
		cfg.Debug = true
	}
	if *color != "" {
		cfg.Color = *color
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.ExitUsage
	}

	logger := cli.NewLogger(cfg.Verbose, cfg.Debug)
	logger.SetOutput(stderr)
	ctx := &types.Context{
		Config: cfg,
		Logger: logger,
		Stdout: stdout,
		Stderr: stderr,
		Color:  useColor(cfg, stderr),
	}
	logger.Color = ctx.Color

	if *configPath != "" {
		logger.Debug("config loaded from %s", *configPath)
	}

	return exitCode(stderr, registry.ExecuteCommand(sub, ctx, subArgs))
}

// loadConfig reads path, or vlang.yaml in the working directory when path
// is empty. An explicit path must exist.
func loadConfig(path string) (*cli.Config, error) {
	if path == "" {
		return cli.LoadConfig(cli.DefaultConfigFile)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return cli.LoadConfig(path)
}

// useColor applies the color mode to stderr. Auto only colors a
// terminal, which a redirected writer never is.
func useColor(cfg *cli.Config, stderr io.Writer) bool {
	if f, ok := stderr.(*os.File); ok {
		return cfg.UseColor(f.Fd())
	}
	return cfg.Color == cli.ColorAlways
}

func exitCode(stderr io.Writer, err error) int {
	if err == nil {
		return cli.ExitOK
	}
	var exit *types.ExitError
	if errors.As(err, &exit) {
		if exit.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exit.Err)
		}
		return exit.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return cli.ExitError
}
