// Package service implements the task service that wires together
// configuration, the tasks file store and the archive database.
package service

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-ports/todo/internal/archive"
	"github.com/go-ports/todo/internal/config"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/store"
)

// Service runs task operations against one tasks file. Every mutating call
// is a complete load → mutate → save cycle.
type Service struct {
	TasksPath   string
	Source      string // how TasksPath was resolved: flag, env, config or default
	ArchivePath string
	Config      *config.Config

	store   *store.Store
	archive *archive.DB
	now     func() time.Time
	mu      sync.Mutex
}

// New initialises a Service for the tasks file named by tasksFile.
// If tasksFile is empty it is resolved via config.ResolveTasksFile.
func New(tasksFile string) (*Service, error) {
	cfg, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}
	path, source := config.ResolveTasksFile(tasksFile)
	return Open(path, source, cfg)
}

// Open initialises a Service for the tasks file at path with an explicit
// configuration. The tasks file is created holding an empty list when
// missing.
func Open(path, source string, cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	st := store.New(path, cfg.Indent)
	if err := st.Initialize(); err != nil {
		return nil, fmt.Errorf("service.Open: %w", err)
	}
	slog.Debug("tasks file resolved", "path", path, "source", source)

	return &Service{
		TasksPath:   path,
		Source:      source,
		ArchivePath: config.ArchivePath(cfg.ArchiveFile, path),
		Config:      cfg,
		store:       st,
		now:         time.Now,
	}, nil
}

// Close releases all resources held by the service.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.archive == nil {
		return nil
	}
	err := s.archive.Close()
	s.archive = nil
	return err
}

// ---------------------------------------------------------------------------
// Task operations
// ---------------------------------------------------------------------------

// List returns every task in list order.
func (s *Service) List() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

// Add appends a pending task and saves the list. A blank description is
// rejected with a *store.ValidationError before anything is written.
func (s *Service) Add(description string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load()
	if err != nil {
		return models.Task{}, err
	}
	tasks, err = store.Add(tasks, description)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.store.Save(tasks); err != nil {
		return models.Task{}, err
	}
	return tasks[len(tasks)-1], nil
}

// Complete marks the task at the 1-based position done and saves the list.
func (s *Service) Complete(position int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load()
	if err != nil {
		return models.Task{}, err
	}
	tasks, err = store.Complete(tasks, position)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.store.Save(tasks); err != nil {
		return models.Task{}, err
	}
	return tasks[position-1], nil
}

// Delete removes the task at the 1-based position, saves the list and
// returns the removed task.
func (s *Service) Delete(position int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load()
	if err != nil {
		return models.Task{}, err
	}
	tasks, removed, err := store.Delete(tasks, position)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.store.Save(tasks); err != nil {
		return models.Task{}, err
	}
	return removed, nil
}

// ---------------------------------------------------------------------------
// Archive
// ---------------------------------------------------------------------------

// Archive moves every done task into the archive database and saves the
// remaining tasks. Returns the number of tasks moved; when nothing is done
// the tasks file is not rewritten.
func (s *Service) Archive() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load()
	if err != nil {
		return 0, err
	}

	done := make([]models.Task, 0)
	pending := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Done {
			done = append(done, t)
		} else {
			pending = append(pending, t)
		}
	}
	if len(done) == 0 {
		return 0, nil
	}

	db, err := s.archiveDB()
	if err != nil {
		return 0, err
	}
	n, err := db.Insert(done, s.TasksPath, s.now())
	if err != nil {
		return 0, fmt.Errorf("Archive: %w", err)
	}
	if err := s.store.Save(pending); err != nil {
		return 0, fmt.Errorf("Archive: %w", err)
	}
	slog.Debug("archived tasks", "count", n, "archive", s.ArchivePath)
	return n, nil
}

// History returns up to limit archived tasks, newest first. A missing
// archive database yields an empty list and is not created.
func (s *Service) History(limit int) ([]models.ArchivedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.archive == nil {
		if _, err := os.Stat(s.ArchivePath); os.IsNotExist(err) {
			return make([]models.ArchivedTask, 0), nil
		}
	}
	db, err := s.archiveDB()
	if err != nil {
		return nil, err
	}
	return db.ListRecent(limit)
}

// ArchivedCount returns the number of archived tasks. A missing archive
// database counts as empty and is not created.
func (s *Service) ArchivedCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.archive == nil {
		if _, err := os.Stat(s.ArchivePath); os.IsNotExist(err) {
			return 0, nil
		}
	}
	db, err := s.archiveDB()
	if err != nil {
		return 0, err
	}
	return db.Count()
}

// archiveDB returns the archive database, opening it on first use.
// Callers hold s.mu.
func (s *Service) archiveDB() (*archive.DB, error) {
	if s.archive != nil {
		return s.archive, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.ArchivePath), 0o755); err != nil {
		return nil, fmt.Errorf("service: create archive dir: %w", err)
	}
	db, err := archive.Open(s.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("service: open archive: %w", err)
	}
	s.archive = db
	return db, nil
}
