// Package store owns the tasks file: a JSON array of task records that is
// read once, mutated in memory and written back in full.
package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/go-ports/todo/internal/models"
)

//go:embed tasks.schema.json
var schemaJSON []byte

const schemaURL = "tasks.schema.json"

// DefaultIndent is the number of spaces used to indent the tasks file.
const DefaultIndent = 2

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Store reads and writes the tasks file at a fixed path.
type Store struct {
	path   string
	indent int
}

// New returns a Store for the tasks file at path. indent is the number of
// spaces per JSON nesting level; zero or less writes compact JSON.
func New(path string, indent int) *Store {
	return &Store{path: path, indent: indent}
}

// Path returns the tasks file path.
func (s *Store) Path() string { return s.path }

// Initialize creates the tasks file holding an empty list when it does not
// exist. An existing file is left alone whatever it contains.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store.Initialize: create dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) // #nosec G302 -- task lists are not secret
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store.Initialize: %w", err)
	}
	if _, err := f.WriteString("[]"); err != nil {
		_ = f.Close()
		return fmt.Errorf("store.Initialize: write: %w", err)
	}
	slog.Debug("created tasks file", "path", s.path)
	return f.Close()
}

// Load reads and parses the whole tasks file. Contents that are not a JSON
// array of task records yield a *ParseError.
func (s *Store) Load() ([]models.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("store.Load: %w", err)
	}
	tasks, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	slog.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save replaces the tasks file with the full serialized list. The data is
// written to a temporary file in the same directory and renamed over the
// target, so readers never observe a partial write.
func (s *Store) Save(tasks []models.Task) error {
	data, err := Encode(tasks, s.indent)
	if err != nil {
		return fmt.Errorf("store.Save: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store.Save: create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			slog.Warn("store.Save: remove temp file", "path", tmpName, "err", rmErr)
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("store.Save: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("store.Save: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("store.Save: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { // #nosec G302 -- task lists are not secret
		cleanup()
		return fmt.Errorf("store.Save: chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("store.Save: rename: %w", err)
	}

	slog.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// Parse decodes a tasks document after checking it against the task list
// schema.
func Parse(data []byte) ([]models.Task, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = make([]models.Task, 0)
	}
	return tasks, nil
}

// Encode serializes tasks as a JSON array. A nil list encodes as [].
func Encode(tasks []models.Task, indent int) ([]byte, error) {
	if tasks == nil {
		tasks = make([]models.Task, 0)
	}
	if indent <= 0 {
		return json.Marshal(tasks)
	}
	return json.MarshalIndent(tasks, "", strings.Repeat(" ", indent))
}

// schemaError reduces a schema validation error to its first leaf cause,
// which names the offending element.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("%s: %s", loc, ve.Message)
}
