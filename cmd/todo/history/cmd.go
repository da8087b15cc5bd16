// Package historycmd implements the `todo history` command.
package historycmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
)

// Command implements `todo history`.
type Command struct {
	ctx   *shared.Context
	cmd   *cobra.Command
	limit int
}

// New creates the history command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "history",
		Short: "List archived tasks, newest first",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().IntVar(&c.limit, "limit", 20, "Maximum entries to show (0 = all)")
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

	entries, err := svc.History(c.limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "📌 No archived tasks.")
		return nil
	}
	total, err := svc.ArchivedCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n📦 Archived Tasks (%d of %d):\n\n", len(entries), total)
	for _, e := range entries {
		fmt.Fprintf(out, "%s  ✔️ %s\n", e.ArchivedAt.Local().Format("2006-01-02 15:04"), e.Description)
	}
	return nil
}
