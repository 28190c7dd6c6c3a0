package commands

import (
	"fmt"
	"os"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
)

// ConfigCommand shows the effective configuration or writes it to a file.
type ConfigCommand struct {
	*BaseCommand
}

// NewConfigCommand creates a new config command handler.
func NewConfigCommand() *ConfigCommand {
	return &ConfigCommand{
		BaseCommand: NewBaseCommand("Show or initialize the configuration",
			usageFor("config", "[--format yaml|json] [--init file [--force]]")),
	}
}

// Execute implements the CommandHandler interface. The configuration
// shown includes environment and global flag overrides.
func (c *ConfigCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "config")
	format := fs.String("format", FormatYAML, "output format: yaml or json")
	initPath := fs.String("init", "", "write the configuration to this file")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return types.UsageError("%s", c.Usage())
	}
	if *format != FormatYAML && *format != FormatJSON {
		return types.UsageError("unknown format %q: want yaml or json", *format)
	}

	if *initPath == "" {
		return encode(ctx.Stdout, *format, ctx.Config)
	}

	if _, err := os.Stat(*initPath); err == nil && !*force {
		return fmt.Errorf("%s already exists; use --force to overwrite", *initPath)
	}
	if err := ctx.Config.SaveConfig(*initPath); err != nil {
		return err
	}
	ctx.Logger.Info("wrote %s", *initPath)
	fmt.Fprintf(ctx.Stdout, "wrote %s\n", *initPath)
	return nil
}
