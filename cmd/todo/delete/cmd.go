// Package deletecmd implements the `todo delete` command.
package deletecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/store"
)

// Command implements `todo delete`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the delete command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "delete <task-number>",
		Short: "Delete a task",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.run,
	}
	// "-1" parses as a shorthand flag; dropping it leaves no position,
	// which reports as an invalid task number.
	c.cmd.FParseErrWhitelist.UnknownFlags = true
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	// A broken tasks file fails the command before the argument is looked at.
	if _, err := svc.List(); err != nil {
		return err
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	position, err := store.ParsePosition("delete", arg)
	if err != nil {
		return shared.ReportInvalidPosition(cmd, svc.Config.StrictExit, err)
	}
	removed, err := svc.Delete(position)
	if err != nil {
		return shared.ReportInvalidPosition(cmd, svc.Config.StrictExit, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "🗑️ Task deleted: \"%s\"\n", removed.Description)
	return nil
}
