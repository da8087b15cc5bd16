// Package rootcmd wires the root cobra.Command for the todo CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/todo/cmd/todo/add"
	archivecmd "github.com/go-ports/todo/cmd/todo/archive"
	configcmd "github.com/go-ports/todo/cmd/todo/config"
	deletecmd "github.com/go-ports/todo/cmd/todo/delete"
	donecmd "github.com/go-ports/todo/cmd/todo/done"
	exportcmd "github.com/go-ports/todo/cmd/todo/export"
	historycmd "github.com/go-ports/todo/cmd/todo/history"
	initcmd "github.com/go-ports/todo/cmd/todo/init"
	listcmd "github.com/go-ports/todo/cmd/todo/list"
	mcpcmd "github.com/go-ports/todo/cmd/todo/mcp"
	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the todo CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "📌 To-Do List CLI",
		Version:       buildinfo.Summary(),
		SilenceUsage:  true,
		SilenceErrors: true,
		// Unknown words fall through to usage, like running with no command.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctx.ConfigureLogging(cmd)
		},
	}

	root.PersistentFlags().StringVar(
		&ctx.TasksFile, "file", "",
		"Tasks file path (default: $TODO_FILE env → persisted config → ./tasks.json)",
	)
	root.PersistentFlags().BoolVar(&ctx.Verbose, "verbose", false, "Log debug output to stderr")

	root.AddCommand(
		addcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		donecmd.New(ctx).Cmd(),
		deletecmd.New(ctx).Cmd(),
		initcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		archivecmd.New(ctx).Cmd(),
		historycmd.New(ctx).Cmd(),
		exportcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
	)

	return root
}
