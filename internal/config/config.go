// Package config handles configuration loading and tasks file resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/todo/internal/store"
)

// DefaultTasksFile is the tasks file name used when nothing else is
// configured. It is resolved against the working directory.
const DefaultTasksFile = "tasks.json"

// EnvTasksFile overrides the tasks file path.
const EnvTasksFile = "TODO_FILE"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// Config is the global configuration stored in ~/.config/todo/config.yaml.
type Config struct {
	TasksFile   string `yaml:"tasks_file"`   // persisted tasks file path; empty = not set
	ArchiveFile string `yaml:"archive_file"` // empty = tasks-archive.db next to the tasks file
	Indent      int    `yaml:"indent"`       // JSON indent width; 0 writes compact JSON
	StrictExit  bool   `yaml:"strict_exit"`  // invalid positions exit non-zero
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{Indent: store.DefaultIndent}
}

// Load reads a config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if v, ok := raw["tasks_file"].(string); ok {
		cfg.TasksFile = strings.TrimSpace(v)
	}
	if v, ok := raw["archive_file"].(string); ok {
		cfg.ArchiveFile = strings.TrimSpace(v)
	}
	if v, ok := raw["indent"].(int); ok && v >= 0 {
		cfg.Indent = v
	}
	if v, ok := raw["strict_exit"].(bool); ok {
		cfg.StrictExit = v
	}

	return cfg, nil
}

// LoadGlobal loads the global config file.
func LoadGlobal() (*Config, error) {
	cfgPath, err := GlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(cfgPath)
}

// ---------------------------------------------------------------------------
// Tasks file resolution
// ---------------------------------------------------------------------------

// GlobalConfigPath returns the path to the global todo config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "todo", "config.yaml"), nil
}

// normalizePath expands ~ and environment variables and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveTasksFile returns the tasks file path and the source of the
// resolution.
// Priority: flagPath → TODO_FILE env → persisted global config → ./tasks.json
// source is one of "flag", "env", "config", or "default".
func ResolveTasksFile(flagPath string) (path, source string) {
	if flagPath != "" {
		if p, err := normalizePath(flagPath); err == nil {
			return p, "flag"
		}
	}

	if env := os.Getenv(EnvTasksFile); env != "" {
		if p, err := normalizePath(env); err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedTasksFile(); ok {
		return persisted, "config"
	}

	p, err := filepath.Abs(DefaultTasksFile)
	if err != nil {
		return DefaultTasksFile, "default"
	}
	return p, "default"
}

// ArchivePath returns the archive database path for tasksPath. An explicit
// archiveFile wins; otherwise the archive sits next to the tasks file.
func ArchivePath(archiveFile, tasksPath string) string {
	if archiveFile != "" {
		if p, err := normalizePath(archiveFile); err == nil {
			return p
		}
		return archiveFile
	}
	return filepath.Join(filepath.Dir(tasksPath), "tasks-archive.db")
}

// GetPersistedTasksFile reads tasks_file from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedTasksFile() (string, bool, error) {
	cfgPath, err := GlobalConfigPath()
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", false, nil
	}

	val, _ := raw["tasks_file"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedTasksFile normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedTasksFile(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := GlobalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Read existing global config, preserving any other keys.
	var raw map[string]any
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &raw)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["tasks_file"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedTasksFile removes tasks_file from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedTasksFile() (bool, error) {
	cfgPath, err := GlobalConfigPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false, nil
	}

	if _, ok := raw["tasks_file"]; !ok {
		return false, nil
	}
	delete(raw, "tasks_file")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}
