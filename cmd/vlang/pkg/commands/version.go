package commands

import (
	"fmt"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/cli"
)

// VersionCommand prints the tool version.
type VersionCommand struct {
	*BaseCommand
}

// NewVersionCommand creates a new version command handler.
func NewVersionCommand() *VersionCommand {
	return &VersionCommand{
		BaseCommand: NewBaseCommand("Show version information",
			usageFor("version", "[--json] [--check constraint]")),
	}
}

// Execute implements the CommandHandler interface. With --check the exit
// status reports whether the version satisfies the constraint.
func (c *VersionCommand) Execute(ctx *types.Context, args []string) error {
	fs := c.flags(ctx, "version")
	jsonOutput := fs.Bool("json", false, "output as JSON")
	constraint := fs.String("check", "", "semver constraint the version must satisfy")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	if *constraint != "" {
		if err := cli.CheckVersion(*constraint); err != nil {
			fmt.Fprintln(ctx.Stderr, err)
			return types.Failed()
		}
		fmt.Fprintf(ctx.Stdout, "vlang %s satisfies %s\n", cli.Version, *constraint)
		return nil
	}

	cli.PrintVersion(ctx.Stdout, "vlang", *jsonOutput)
	return nil
}
