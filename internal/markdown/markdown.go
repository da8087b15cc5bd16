// Package markdown renders task lists as GitHub-flavoured markdown checklists.
package markdown

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-ports/todo/internal/models"
)

// RenderItem produces a single checklist line for a task.
func RenderItem(t models.Task) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	return "- " + box + " " + singleLine(t.Description)
}

// RenderDocument produces a complete markdown document for tasks: YAML
// front-matter, a title and one checklist line per task in list order.
// source is the tasks file path recorded in the front-matter.
func RenderDocument(tasks []models.Task, source string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString("source: ")
	sb.WriteString(source)
	sb.WriteString("\n")
	sb.WriteString("exported: ")
	sb.WriteString(now.UTC().Format(time.RFC3339))
	sb.WriteString("\n")
	sb.WriteString("total: ")
	sb.WriteString(strconv.Itoa(len(tasks)))
	sb.WriteString("\n")
	sb.WriteString("done: ")
	sb.WriteString(strconv.Itoa(models.CountDone(tasks)))
	sb.WriteString("\n")
	sb.WriteString("---\n")
	sb.WriteString("\n# To-Do List\n\n")

	if len(tasks) == 0 {
		sb.WriteString("_No tasks._\n")
		return sb.String()
	}
	for _, t := range tasks {
		sb.WriteString(RenderItem(t))
		sb.WriteString("\n")
	}
	return sb.String()
}

// SplitFrontmatter splits YAML front-matter from the body.
// Returns ("", content) when no front-matter is detected.
func SplitFrontmatter(content string) (frontmatter, body string) {
	parts := strings.SplitN(content, "---\n", 3)
	if len(parts) >= 3 && parts[0] == "" {
		return "---\n" + parts[1] + "---", parts[2]
	}
	return "", content
}

// singleLine collapses line breaks so a description cannot break out of its
// list item.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
