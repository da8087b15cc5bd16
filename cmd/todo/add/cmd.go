// Package addcmd implements the `todo add` command.
package addcmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/store"
)

// Command implements `todo add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a new task",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.run,
	}
	// Words after the description start, like "-v", belong to the description.
	c.cmd.Flags().SetInterspersed(false)
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

	task, err := svc.Add(strings.Join(args, " "))
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintln(cmd.OutOrStdout(), "❌ Please provide a task description.")
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Task added: \"%s\"\n", task.Description)
	return nil
}
