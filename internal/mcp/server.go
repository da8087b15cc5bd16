// Package mcp provides the stdio MCP server exposing the task operations as
// tools for coding agents.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/todo/internal/buildinfo"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/service"
	"github.com/go-ports/todo/internal/store"
)

const addDescription = `Add a task to the end of the to-do list. The new task starts pending. Returns the task and its 1-based position.`

const listDescription = `List every task in order with its 1-based position and done flag. Positions change when tasks are deleted, so list again before calling todo_done or todo_delete.` //nolint:lll

const doneDescription = `Mark the task at a 1-based position as done. Completing an already done task is a no-op.`

const deleteDescription = `Delete the task at a 1-based position. Every later task moves up by one position.`

// NewServer creates and registers all task tools on a new MCP server.
// It is separate from Serve so tests can obtain a configured server without
// the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("todo", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server for the tasks file named by tasksFile,
// blocking until stdin closes.
func Serve(_ context.Context, tasksFile string) error {
	svc, err := service.New(tasksFile)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	defer svc.Close()

	return mcpserver.ServeStdio(NewServer(svc))
}

// registerTools wires the four task tools into the server.
func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("todo_add",
		mcp.WithDescription(addDescription),
		mcp.WithString("description",
			mcp.Description("Task text. Must not be blank."),
			mcp.Required(),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(svc, req)
	})

	s.AddTool(mcp.NewTool("todo_list",
		mcp.WithDescription(listDescription),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(svc)
	})

	s.AddTool(mcp.NewTool("todo_done",
		mcp.WithDescription(doneDescription),
		mcp.WithNumber("position",
			mcp.Description("1-based task position as shown by todo_list."),
			mcp.Required(),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDone(svc, req)
	})

	s.AddTool(mcp.NewTool("todo_delete",
		mcp.WithDescription(deleteDescription),
		mcp.WithNumber("position",
			mcp.Description("1-based task position as shown by todo_list."),
			mcp.Required(),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDelete(svc, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleAdd(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := svc.Add(req.GetString("description", ""))
	if err != nil {
		return toolError(err), nil
	}
	tasks, err := svc.List()
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(taskEntry(len(tasks), task))
}

func handleList(svc *service.Service) (*mcp.CallToolResult, error) {
	tasks, err := svc.List()
	if err != nil {
		return toolError(err), nil
	}
	entries := make([]map[string]any, 0, len(tasks))
	for i, t := range tasks {
		entries = append(entries, taskEntry(i+1, t))
	}
	return jsonResult(map[string]any{
		"total": len(tasks),
		"done":  models.CountDone(tasks),
		"tasks": entries,
	})
}

func handleDone(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position, err := positionArg(req, "done")
	if err != nil {
		return toolError(err), nil
	}
	task, err := svc.Complete(position)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(taskEntry(position, task))
}

func handleDelete(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position, err := positionArg(req, "delete")
	if err != nil {
		return toolError(err), nil
	}
	task, err := svc.Delete(position)
	if err != nil {
		return toolError(err), nil
	}
	entry := taskEntry(position, task)
	entry["deleted"] = true
	return jsonResult(entry)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// positionArg reads the 1-based position argument. Missing or fractional
// values are invalid task numbers, not truncated.
func positionArg(req mcp.CallToolRequest, op string) (int, error) {
	p := req.GetFloat("position", 0)
	if p != math.Trunc(p) || p < math.MinInt32 || p > math.MaxInt32 {
		return 0, &store.ValidationError{Op: op, Reason: store.ReasonInvalidPosition}
	}
	return int(p), nil
}

func taskEntry(position int, t models.Task) map[string]any {
	return map[string]any{
		"position": position,
		"task":     t.Description,
		"done":     t.Done,
		"status":   t.Status(),
	}
}

// toolError reports err to the client. Validation failures carry only their
// reason; anything else keeps the full chain.
func toolError(err error) *mcp.CallToolResult {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		return mcp.NewToolResultError(ve.Reason)
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
