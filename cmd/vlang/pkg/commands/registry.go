package commands

import (
	"fmt"
	"sort"

	"github.com/vlang-lab/vlang/cmd/vlang/pkg/types"
	"github.com/vlang-lab/vlang/internal/cli"
)

// Registry manages all available commands.
type Registry struct {
	commands map[string]types.CommandHandler
}

// NewRegistry creates a new command registry and registers all available commands.
func NewRegistry() *Registry {
	registry := &Registry{
		commands: make(map[string]types.CommandHandler),
	}

	registry.register("run", NewRunCommand())
	registry.register("check", NewCheckCommand())
	registry.register("config", NewConfigCommand())
	registry.register("tokens", NewTokensCommand())
	registry.register("ast", NewASTCommand())
	registry.register("symbols", NewSymbolsCommand())
	registry.register("repl", NewREPLCommand())
	registry.register("watch", NewWatchCommand())
	registry.register("serve", NewServeCommand())
	registry.register("test", NewTestCommand())
	registry.register("version", NewVersionCommand())

	return registry
}

// register adds a command to the registry.
func (r *Registry) register(name string, command types.CommandHandler) {
	r.commands[name] = command
}

// GetCommand retrieves a command by name.
func (r *Registry) GetCommand(name string) (types.CommandHandler, bool) {
	command, exists := r.commands[name]
	return command, exists
}

// GetAllCommands returns a sorted list of all command names.
func (r *Registry) GetAllCommands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CommandInfos describes the commands for cli.PrintUsage.
func (r *Registry) CommandInfos() []cli.CommandInfo {
	infos := make([]cli.CommandInfo, 0, len(r.commands))
	for _, name := range r.GetAllCommands() {
		c := r.commands[name]
		infos = append(infos, cli.CommandInfo{Name: name, Usage: c.Usage(), Description: c.Description()})
	}
	return infos
}

// ExecuteCommand executes a command by name with the given context and arguments.
func (r *Registry) ExecuteCommand(name string, ctx *types.Context, args []string) error {
	command, exists := r.GetCommand(name)
	if !exists {
		return types.UsageError("unknown subcommand: %s", name)
	}

	return command.Execute(ctx, args)
}

// usageFor formats the usage line of a command.
func usageFor(name, rest string) string {
	return fmt.Sprintf("usage: vlang %s %s", name, rest)
}
