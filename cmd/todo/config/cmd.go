// Package configcmd implements the `todo config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/config"
)

const configTemplate = `# todo configuration

# Tasks file used when neither --file nor TODO_FILE is set.
# tasks_file: ~/tasks.json

# SQLite database for archived tasks.
# Empty keeps tasks-archive.db next to the tasks file.
archive_file: ""

# JSON indent width for the tasks file. 0 writes compact JSON.
indent: 2

# Exit non-zero when done/delete get an invalid task number.
strict_exit: false
`

// Command implements `todo config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newConfigInit(),
		newSetFile(),
		newClearFile(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadGlobal()
	if err != nil {
		return err
	}
	cfgPath, err := config.GlobalConfigPath()
	if err != nil {
		return err
	}
	tasksPath, source := config.ResolveTasksFile(c.ctx.TasksFile)

	data := map[string]any{
		"config_file":       cfgPath,
		"tasks_file":        tasksPath,
		"tasks_file_source": source,
		"archive_file":      config.ArchivePath(cfg.ArchiveFile, tasksPath),
		"indent":            cfg.Indent,
		"strict_exit":       cfg.StrictExit,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, err := config.GlobalConfigPath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-file
// ---------------------------------------------------------------------------

func newSetFile() *cobra.Command {
	return &cobra.Command{
		Use:   "set-file <path>",
		Short: "Persist the tasks file location (used when TODO_FILE is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedTasksFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted tasks file: %s\n", resolved)
			fmt.Fprintf(out, "Override anytime with %s or --file.\n", config.EnvTasksFile)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// config clear-file
// ---------------------------------------------------------------------------

func newClearFile() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-file",
		Short: "Remove the persisted tasks file location from global config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := config.ClearPersistedTasksFile()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintln(out, "Cleared persisted tasks file setting.")
			} else {
				fmt.Fprintln(out, "No persisted tasks file setting was found.")
			}
			return nil
		},
	}
}
