package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/orgauth/internal/tasks"
)

// TaskQueue is the part of the task client the controller needs.
type TaskQueue interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// MaintenanceTrigger enqueues an out-of-schedule maintenance run.
type MaintenanceTrigger interface {
	RunNow() (string, error)
}

// TasksController exposes background task status and manual triggers.
type TasksController struct {
	queue       TaskQueue
	maintenance MaintenanceTrigger
}

func NewTasksController(queue TaskQueue, maintenance MaintenanceTrigger) *TasksController {
	return &TasksController{queue: queue, maintenance: maintenance}
}

// TaskInfo is the task status payload.
type TaskInfo struct {
	ID     string `json:"id"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status"`
}

// GetTaskStatus handles GET /api/tasks/:id.
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondFailure(c, http.StatusNotFound, "Not found", "Task not found")
		return
	}

	respondSuccess(c, http.StatusOK, "Task status retrieved successfully", TaskInfo{
		ID:     taskID,
		Status: tasks.StatusName(status),
	})
}

// RunTask handles POST /api/tasks/:type/run.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")
	if taskType != tasks.MaintainDatabaseQueue {
		respondFailure(c, http.StatusBadRequest, "Bad request", "Unknown task type: "+taskType)
		return
	}

	id, err := tc.maintenance.RunNow()
	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	respondSuccess(c, http.StatusAccepted, "Task enqueued", TaskInfo{
		ID:     id,
		Type:   taskType,
		Status: tasks.StatusName(backlite.TaskStatusPending),
	})
}
