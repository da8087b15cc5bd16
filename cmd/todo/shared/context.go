// Package shared holds the context passed to all CLI commands.
package shared

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/internal/service"
	"github.com/go-ports/todo/internal/store"
)

// InvalidTaskNumber is printed when done or delete gets a bad position.
const InvalidTaskNumber = "⚠️ Invalid task number."

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// TasksFile overrides the tasks file path.
	// When empty, resolution falls through to TODO_FILE env var → persisted config → ./tasks.json.
	TasksFile string
	Verbose   bool
}

// OpenService opens the task service for the resolved tasks file.
func (c *Context) OpenService() (*service.Service, error) {
	return service.New(c.TasksFile)
}

// ConfigureLogging installs the process-wide slog handler. Verbose runs log
// at debug level; otherwise only warnings reach stderr.
func (c *Context) ConfigureLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
}

// ReportInvalidPosition handles a failed done/delete. Validation failures
// print the warning and succeed unless strict is set; other errors are
// returned unchanged.
func ReportInvalidPosition(cmd *cobra.Command, strict bool, err error) error {
	var ve *store.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), InvalidTaskNumber)
	if strict {
		return err
	}
	slog.Debug("invalid position ignored", "op", ve.Op)
	return nil
}
