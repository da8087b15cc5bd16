// Package exportcmd implements the `todo export` command.
package exportcmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/markdown"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/store"
)

// Command implements `todo export`.
type Command struct {
	ctx    *shared.Context
	cmd    *cobra.Command
	format string
	output string
}

// New creates the export command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "export",
		Short: "Render the task list as markdown, JSON or YAML",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVar(&c.format, "format", "markdown", "Output format: markdown, json or yaml")
	c.cmd.Flags().StringVarP(&c.output, "output", "o", "", "Write to file instead of stdout")
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

	tasks, err := svc.List()
	if err != nil {
		return err
	}
	data, err := render(c.format, tasks, svc.TasksPath, svc.Config.Indent)
	if err != nil {
		return err
	}

	if c.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(c.output, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", len(tasks), c.output)
	return nil
}

func render(format string, tasks []models.Task, source string, indent int) ([]byte, error) {
	switch format {
	case "markdown", "md":
		return []byte(markdown.RenderDocument(tasks, source, time.Now())), nil
	case "json":
		b, err := store.Encode(tasks, indent)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(models.Clone(tasks))
	default:
		return nil, fmt.Errorf("export: unknown format %q (want markdown, json or yaml)", format)
	}
}
