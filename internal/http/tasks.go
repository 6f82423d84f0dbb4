package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotebook/internal/tasks"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	client TaskQueue
}

// NewTasksController creates a new TasksController.
func NewTasksController(client TaskQueue) *TasksController {
	return &TasksController{client: client}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

var taskTypes = []TaskTypeInfo{
	{
		Type:        "cleanup_audit_events",
		Description: "Delete audit events older than the retention period",
		Queue:       tasks.CleanupAuditEventsTask{}.Config().Name,
	},
}

// ListTaskTypes handles GET /api/tasks/types
// Returns the list of task types that can be triggered manually.
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"task_types": taskTypes,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required", "")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
// Manually enqueues a task of the specified type.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	switch taskType {
	case "cleanup_audit_events":
		if err := tc.client.EnqueueAuditCleanup(); err != nil {
			respondInternalError(c, err, "enqueue audit cleanup")
			return
		}
	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType), "unknown_task_type")
		return
	}

	respondAccepted(c, "task enqueued", gin.H{"type": taskType})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
