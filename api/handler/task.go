package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/validation"
	"github.com/taskhive/backend/pkg/httpcontext"
	taskUC "github.com/taskhive/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's tasks
// @Tags tasks
// @Router /tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, userID)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to list tasks")
		return
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Create a task
// @Tags tasks
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewStatusError("invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	failure, err := validation.First(stdCtx, taskFields(req)...)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to create task")
		return
	}
	if failure != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewStatusError(failure.Message))
		return
	}

	createdDate, completionDate := taskDates(req)
	created, err := h.uc.CreateTask(stdCtx, &domain.Task{
		UserID:         userID,
		Name:           req.Name,
		CreatedDate:    createdDate,
		CompletionDate: completionDate,
	})
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to create task")
		return
	}

	h.respondJSON(ctx, http.StatusCreated, transport.TaskResponse{
		Status:  transport.StatusSuccess,
		Message: "Task created successfully!",
		Task:    created,
	})
}

// @Summary Show a single task
// @Tags tasks
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Authorize(stdCtx, taskID(ctx), userID, domain.ActionView)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to load task")
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Update a task
// @Tags tasks
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// Ownership is checked before the payload is even looked at.
	task, err := h.uc.Authorize(stdCtx, taskID(ctx), userID, domain.ActionUpdate)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to update task")
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewStatusError("invalid payload"))
		return
	}

	failure, err := validation.First(stdCtx, taskFields(req)...)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to update task")
		return
	}
	if failure != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewStatusError(failure.Message))
		return
	}

	createdDate, completionDate := taskDates(req)
	updated, err := h.uc.UpdateTask(stdCtx, task, req.Name, createdDate, completionDate)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to update task")
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.TaskResponse{
		Status:  transport.StatusSuccess,
		Message: "Task updated successfully!",
		Task:    updated,
	})
}

// @Summary Delete a task
// @Tags tasks
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Authorize(stdCtx, taskID(ctx), userID, domain.ActionDelete)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to delete task")
		return
	}

	if err := h.uc.DeleteTask(stdCtx, task.ID); err != nil {
		h.respondTaskError(ctx, err, "Failed to delete task")
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.StatusResponse{
		Status:  transport.StatusSuccess,
		Message: "Task deleted successfully!",
	})
}

// @Summary Mark a task completed
// @Tags tasks
// @Router /tasks/{id}/complete [patch]
func (h *TaskHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Authorize(stdCtx, taskID(ctx), userID, domain.ActionUpdate)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to complete task")
		return
	}

	completed, err := h.uc.CompleteTask(stdCtx, task.ID)
	if err != nil {
		h.respondTaskError(ctx, err, "Failed to complete task")
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.TaskResponse{
		Status:  transport.StatusSuccess,
		Message: "Task marked as completed!",
		Task:    completed,
	})
}

// taskFields declares the shared rule set for create and update. Field
// order is the surfacing order on validation failure.
func taskFields(req transport.TaskRequest) []validation.Field {
	return []validation.Field{
		validation.NewField("name", req.Name,
			validation.Required(), validation.String(), validation.Max(255)),
		validation.NewField("created_date", req.CreatedDate,
			validation.Required(), validation.Date()),
		validation.NewField("completion_date", req.CompletionDate,
			validation.Nullable(), validation.Date(),
			validation.AfterOrEqual("created_date", req.CreatedDate)),
	}
}

// taskDates converts validated date strings; called only after validation
// passed, so parse failures cannot happen for created_date.
func taskDates(req transport.TaskRequest) (time.Time, *time.Time) {
	createdDate, _ := validation.ParseDate(req.CreatedDate)
	var completionDate *time.Time
	if req.CompletionDate != "" {
		if parsed, ok := validation.ParseDate(req.CompletionDate); ok {
			completionDate = &parsed
		}
	}
	return createdDate, completionDate
}

func taskID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}
