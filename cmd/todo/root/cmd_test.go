// End-to-end tests that exercise the full todo CLI by running the root command
// in-process against a temporary tasks file. Output is captured via cobra's
// SetOut so nothing reaches os.Stdout.
package rootcmd_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"gopkg.in/yaml.v3"

	rootcmd "github.com/go-ports/todo/cmd/todo/root"
	"github.com/go-ports/todo/internal/checkers"
	"github.com/go-ports/todo/internal/config"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/store"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// runCmd executes the root command with the provided args and returns the
// captured stdout output along with any execution error.
func runCmd(c *qt.C, args ...string) (string, error) {
	c.TB.Helper()

	var out, errOut bytes.Buffer
	root := rootcmd.New()
	root.SetOut(&out)
	root.SetErr(&errOut)
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	root.SetArgs(args)
	execErr := root.ExecuteContext(context.Background())

	return out.String(), execErr
}

// setup isolates HOME and TODO_FILE and returns a tasks file path inside a
// fresh temporary directory.
func setup(c *qt.C) string {
	c.TB.Helper()
	c.Setenv("HOME", c.TB.TempDir())
	c.Setenv(config.EnvTasksFile, "")
	return filepath.Join(c.TB.TempDir(), "tasks.json")
}

// writeGlobalConfig writes the global config.yaml under the isolated HOME.
func writeGlobalConfig(c *qt.C, content string) {
	c.TB.Helper()
	cfgPath, err := config.GlobalConfigPath()
	c.Assert(err, qt.IsNil)
	c.Assert(os.MkdirAll(filepath.Dir(cfgPath), 0o755), qt.IsNil)
	c.Assert(os.WriteFile(cfgPath, []byte(content), 0o600), qt.IsNil)
}

func readFile(c *qt.C, path string) string {
	c.TB.Helper()
	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	return string(data)
}

// ---------------------------------------------------------------------------
// Help / version
// ---------------------------------------------------------------------------

func TestHelp_HappyPath(t *testing.T) {
	c := qt.New(t)
	setup(c)

	cases := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"help flag", []string{"--help"}},
		{"unknown word", []string{"frobnicate"}},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			out, err := runCmd(c, tc.args...)
			c.Assert(err, qt.IsNil)
			c.Assert(out, qt.Contains, "To-Do List CLI")
			c.Assert(out, qt.Contains, "add")
			c.Assert(out, qt.Contains, "delete")
		})
	}
}

func TestVersion_HappyPath(t *testing.T) {
	c := qt.New(t)
	setup(c)

	out, err := runCmd(c, "--version")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "todo version")
}

// ---------------------------------------------------------------------------
// Scenario
// ---------------------------------------------------------------------------

func TestScenario_HappyPath(t *testing.T) {
	c := qt.New(t)
	path := setup(c)

	out, err := runCmd(c, "--file", path, "add", "Buy", "milk")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "✅ Task added: \"Buy milk\"\n")

	out, err = runCmd(c, "--file", path, "add", "Walk dog")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "✅ Task added: \"Walk dog\"\n")

	out, err = runCmd(c, "--file", path, "done", "1")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "🎉 Task marked as done: \"Buy milk\"\n")

	out, err = runCmd(c, "--file", path, "list")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "\n📋 To-Do List:\n\n1. ✔️ Buy milk\n2. ❌ Walk dog\n")

	out, err = runCmd(c, "--file", path, "delete", "1")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "🗑️ Task deleted: \"Buy milk\"\n")

	out, err = runCmd(c, "--file", path, "list")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "\n📋 To-Do List:\n\n1. ❌ Walk dog\n")

	c.Assert(readFile(c, path), qt.Equals, "[\n  {\n    \"task\": \"Walk dog\",\n    \"done\": false\n  }\n]")
}

func TestList_Empty(t *testing.T) {
	c := qt.New(t)
	path := setup(c)

	out, err := runCmd(c, "--file", path, "list")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "📌 No tasks found.\n")
	c.Assert(readFile(c, path), qt.Equals, "[]")
}

func TestTasksFile_FromEnv(t *testing.T) {
	c := qt.New(t)
	path := setup(c)
	c.Setenv(config.EnvTasksFile, path)

	_, err := runCmd(c, "add", "from env")
	c.Assert(err, qt.IsNil)
	c.Assert(readFile(c, path), checkers.JSONPathEquals("$[0].task"), "from env")
}

// ---------------------------------------------------------------------------
// Validation and exit behavior
// ---------------------------------------------------------------------------

func TestAdd_EmptyDescriptionFails(t *testing.T) {
	c := qt.New(t)
	path := setup(c)

	for _, args := range [][]string{{"add"}, {"add", "   "}} {
		out, err := runCmd(c, append([]string{"--file", path}, args...)...)
		var ve *store.ValidationError
		c.Assert(err, qt.ErrorAs, &ve)
		c.Assert(ve.Reason, qt.Equals, store.ReasonEmptyDescription)
		c.Assert(out, qt.Equals, "❌ Please provide a task description.\n")
	}
	c.Assert(readFile(c, path), qt.Equals, "[]")
}

func TestAdd_FlagLikeWords(t *testing.T) {
	c := qt.New(t)
	path := setup(c)

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"fix", "-v", "bug"}, "fix -v bug"},
		{[]string{"rename", "--x", "flag"}, "rename --x flag"},
		{[]string{"try", "--file", "other.json"}, "try --file other.json"},
	}

	for i, tc := range cases {
		out, err := runCmd(c, append([]string{"--file", path, "add"}, tc.args...)...)
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Equals, "✅ Task added: \""+tc.want+"\"\n")
		c.Assert(readFile(c, path), checkers.JSONPathEquals(fmt.Sprintf("$[%d].task", i)), tc.want)
	}
}

func TestInvalidPosition_ExitsZero(t *testing.T) {
	c := qt.New(t)
	path := setup(c)

	_, err := runCmd(c, "--file", path, "add", "only")
	c.Assert(err, qt.IsNil)
	before := readFile(c, path)

	cases := []struct {
		name string
		args []string
	}{
		{"done zero", []string{"done", "0"}},
		{"done past end", []string{"done", "2"}},
		{"done missing", []string{"done"}},
		{"done not a number", []string{"done", "abc"}},
		{"done negative", []string{"done", "-1"}},
		{"delete past end", []string{"delete", "5"}},
		{"delete missing", []string{"delete"}},
		{"delete not a number", []string{"delete", "x1"}},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			out, err := runCmd(c, append([]string{"--file", path}, tc.args...)...)
			c.Assert(err, qt.IsNil)
			c.Assert(out, qt.Equals, "⚠️ Invalid task number.\n")
			c.Assert(readFile(c, path), qt.Equals, before)
		})
	}
}

func TestInvalidPosition_StrictExit(t *testing.T) {
	c := qt.New(t)
	path := setup(c)
	writeGlobalConfig(c, "strict_exit: true\n")

	for _, verb := range []string{"done", "delete"} {
		out, err := runCmd(c, "--file", path, verb, "1")
		var ve *store.ValidationError
		c.Assert(err, qt.ErrorAs, &ve)
		c.Assert(ve.Op, qt.Equals, verb)
		c.Assert(out, qt.Equals, "⚠️ Invalid task number.\n")
	}
}

func TestCorruptFile_Fails(t *testing.T) {
	c := qt.New(t)
	path := setup(c)
	c.Assert(os.WriteFile(path, []byte(`{"task":"x"}`), 0o600), qt.IsNil)

	for _, args := range [][]string{
		{"list"},
		{"add", "x"},
		{"done", "1"},
		{"done", "abc"},
		{"done"},
		{"delete", "1"},
		{"delete"},
		{"delete", "-1"},
	} {
		out, err := runCmd(c, append([]string{"--file", path}, args...)...)
		c.Assert(out, qt.Not(qt.Contains), "Invalid task number")
		var pe *store.ParseError
		c.Assert(err, qt.ErrorAs, &pe)
		c.Assert(pe.Path, qt.Equals, path)
	}
	c.Assert(readFile(c, path), qt.Equals, `{"task":"x"}`)
}

// ---------------------------------------------------------------------------
// Init / config
// ---------------------------------------------------------------------------

func TestInit_HappyPath(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(setup(c), "..", "nested", "tasks.json")

	out, err := runCmd(c, "--file", path, "init")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Tasks file ready at")
	c.Assert(out, qt.Contains, "(flag)")
	c.Assert(readFile(c, path), qt.Equals, "[]")
}

func TestConfig_SetShowClear(t *testing.T) {
	c := qt.New(t)
	path := setup(c)

	out, err := runCmd(c, "config", "set-file", path)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Persisted tasks file: "+path)

	out, err = runCmd(c, "config")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "tasks_file: "+path)
	c.Assert(out, qt.Contains, "tasks_file_source: config")
	c.Assert(out, qt.Contains, "indent: 2")

	_, err = runCmd(c, "add", "persisted")
	c.Assert(err, qt.IsNil)
	c.Assert(readFile(c, path), checkers.JSONPathEquals("$[0].task"), "persisted")

	out, err = runCmd(c, "config", "clear-file")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Cleared persisted tasks file setting.")

	out, err = runCmd(c, "config", "clear-file")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "No persisted tasks file setting was found.")
}

func TestConfigInit_HappyPath(t *testing.T) {
	c := qt.New(t)
	setup(c)

	out, err := runCmd(c, "config", "init")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Created")

	out, err = runCmd(c, "config", "init")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Use --force to overwrite.")

	out, err = runCmd(c, "config", "init", "--force")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Created")

	cfg, err := config.LoadGlobal()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, config.Default())
}

// ---------------------------------------------------------------------------
// Archive / history / export
// ---------------------------------------------------------------------------

func TestArchiveAndHistory_HappyPath(t *testing.T) {
	c := qt.New(t)
	path := setup(c)

	out, err := runCmd(c, "--file", path, "history")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "📌 No archived tasks.\n")

	for _, d := range []string{"Buy milk", "Walk dog"} {
		_, err := runCmd(c, "--file", path, "add", d)
		c.Assert(err, qt.IsNil)
	}

	out, err = runCmd(c, "--file", path, "archive")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "📌 No done tasks to archive.\n")

	_, err = runCmd(c, "--file", path, "done", "1")
	c.Assert(err, qt.IsNil)

	out, err = runCmd(c, "--file", path, "archive")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Archived 1 task(s)")

	out, err = runCmd(c, "--file", path, "list")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "\n📋 To-Do List:\n\n1. ❌ Walk dog\n")

	out, err = runCmd(c, "--file", path, "history", "--limit", "5")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "✔️ Buy milk")
	c.Assert(out, qt.Contains, "Archived Tasks (1 of 1)")
}

func TestExport_Formats(t *testing.T) {
	c := qt.New(t)
	path := setup(c)

	_, err := runCmd(c, "--file", path, "add", "Buy milk")
	c.Assert(err, qt.IsNil)
	_, err = runCmd(c, "--file", path, "done", "1")
	c.Assert(err, qt.IsNil)
	_, err = runCmd(c, "--file", path, "add", "Walk dog")
	c.Assert(err, qt.IsNil)

	c.Run("markdown", func(c *qt.C) {
		out, err := runCmd(c, "--file", path, "export")
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "source: "+path)
		c.Assert(out, qt.Contains, "- [x] Buy milk\n- [ ] Walk dog\n")
	})

	c.Run("json", func(c *qt.C) {
		out, err := runCmd(c, "--file", path, "export", "--format", "json")
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Equals, readFile(c, path)+"\n")
		c.Assert(out, checkers.JSONPathEquals("$[1].task"), "Walk dog")
	})

	c.Run("yaml", func(c *qt.C) {
		out, err := runCmd(c, "--file", path, "export", "--format", "yaml")
		c.Assert(err, qt.IsNil)
		var got []models.Task
		c.Assert(yaml.Unmarshal([]byte(out), &got), qt.IsNil)
		c.Assert(got, qt.DeepEquals, []models.Task{
			{Description: "Buy milk", Done: true},
			{Description: "Walk dog"},
		})
	})

	c.Run("to file", func(c *qt.C) {
		dest := filepath.Join(c.TB.TempDir(), "out.md")
		out, err := runCmd(c, "--file", path, "export", "--output", dest)
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "Exported 2 task(s)")
		c.Assert(strings.HasPrefix(readFile(c, dest), "---\n"), qt.IsTrue)
	})

	c.Run("unknown format", func(c *qt.C) {
		_, err := runCmd(c, "--file", path, "export", "--format", "csv")
		c.Assert(err, qt.ErrorMatches, `export: unknown format "csv".*`)
	})
}
