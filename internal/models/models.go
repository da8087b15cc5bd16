// Package models defines the core data types for the task tracker.
package models

import "time"

// Task is a single to-do entry. The JSON field names match the on-disk
// tasks file: "task" holds the description and "done" the completion flag.
type Task struct {
	Description string `json:"task" yaml:"task"`
	Done        bool   `json:"done" yaml:"done"`
}

// Status returns "done" or "pending".
func (t Task) Status() string {
	if t.Done {
		return "done"
	}
	return "pending"
}

// Mark returns the console marker used by `todo list`.
func (t Task) Mark() string {
	if t.Done {
		return "✔️"
	}
	return "❌"
}

// ArchivedTask is a completed task moved out of the tasks file into the
// archive database.
type ArchivedTask struct {
	ID          int64
	Description string
	Source      string // tasks file the task was archived from
	ArchivedAt  time.Time
}

// Clone returns a copy of tasks that shares no backing array with the input.
// A nil input yields an empty, non-nil slice.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// CountDone returns the number of completed tasks in tasks.
func CountDone(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Done {
			n++
		}
	}
	return n
}
