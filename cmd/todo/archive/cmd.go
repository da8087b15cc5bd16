// Package archivecmd implements the `todo archive` command.
package archivecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
)

// Command implements `todo archive`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the archive command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "archive",
		Short: "Move done tasks into the archive database",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	n, err := svc.Archive()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if n == 0 {
		fmt.Fprintln(out, "📌 No done tasks to archive.")
		return nil
	}
	fmt.Fprintf(out, "📦 Archived %d task(s) to %s\n", n, svc.ArchivePath)
	return nil
}
