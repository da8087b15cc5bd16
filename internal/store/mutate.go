package store

import (
	"strconv"
	"strings"

	"github.com/go-ports/todo/internal/models"
)

// ReasonEmptyDescription and ReasonInvalidPosition are the Reason values of
// the two ValidationError kinds.
const (
	ReasonEmptyDescription = "please provide a task description"
	ReasonInvalidPosition  = "invalid task number"
)

// Add returns a copy of tasks with a new pending task appended.
// description is stored as given; it is rejected when blank after trimming.
func Add(tasks []models.Task, description string) ([]models.Task, error) {
	if strings.TrimSpace(description) == "" {
		return tasks, &ValidationError{Op: "add", Reason: ReasonEmptyDescription}
	}
	out := make([]models.Task, len(tasks), len(tasks)+1)
	copy(out, tasks)
	return append(out, models.Task{Description: description}), nil
}

// Complete returns a copy of tasks with the task at the 1-based position
// marked done. Completing a done task is a no-op.
func Complete(tasks []models.Task, position int) ([]models.Task, error) {
	if !validPosition(tasks, position) {
		return tasks, &ValidationError{Op: "done", Reason: ReasonInvalidPosition}
	}
	out := models.Clone(tasks)
	out[position-1].Done = true
	return out, nil
}

// Delete returns a copy of tasks without the task at the 1-based position,
// together with the removed task. Later tasks shift down by one position.
func Delete(tasks []models.Task, position int) ([]models.Task, models.Task, error) {
	if !validPosition(tasks, position) {
		return tasks, models.Task{}, &ValidationError{Op: "delete", Reason: ReasonInvalidPosition}
	}
	removed := tasks[position-1]
	out := make([]models.Task, 0, len(tasks)-1)
	out = append(out, tasks[:position-1]...)
	out = append(out, tasks[position:]...)
	return out, removed, nil
}

// ParsePosition parses a command-line position argument. op names the
// operation for the returned ValidationError.
func ParsePosition(op, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, &ValidationError{Op: op, Reason: ReasonInvalidPosition}
	}
	return n, nil
}

func validPosition(tasks []models.Task, position int) bool {
	return position >= 1 && position <= len(tasks)
}
