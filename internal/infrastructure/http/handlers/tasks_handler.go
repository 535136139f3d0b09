package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/personaltask/taskmanager/internal/application/task"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
	"github.com/personaltask/taskmanager/internal/infrastructure/http/middleware"
)

// TasksHandler handles /api/tasks/*. Requires Gate.
type TasksHandler struct {
	create   *task.CreateTask
	list     *task.ListTasks
	update   *task.UpdateTask
	delete   *task.DeleteTask
	errs     ErrorWriter
	validate *validator.Validate
}

func NewTasksHandler(create *task.CreateTask, list *task.ListTasks, update *task.UpdateTask, del *task.DeleteTask, errs ErrorWriter) *TasksHandler {
	return &TasksHandler{
		create:   create,
		list:     list,
		update:   update,
		delete:   del,
		errs:     errs,
		validate: newValidator(),
	}
}

type taskRequest struct {
	ProjectID   string  `json:"projectId"`
	Title       string  `json:"title" validate:"max=500"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    *int    `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	tasks, err := h.list.Execute(r.Context(), identity.UserID)
	if err != nil {
		h.errs.write(w, r, "list tasks", err)
		return
	}
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create stamps the caller as owner. A userId in the body is not read.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body taskRequest
	if err := decodeBody(r, h.validate, &body); err != nil {
		h.errs.write(w, r, "create task", err)
		return
	}
	t, err := h.create.Execute(r.Context(), task.CreateTaskInput{
		Owner:       identity.UserID,
		ProjectID:   body.ProjectID,
		Title:       body.Title,
		Description: deref(body.Description),
		Status:      deref(body.Status),
		Priority:    body.Priority,
		DueDate:     deref(body.DueDate),
	})
	if err != nil {
		h.errs.write(w, r, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, taskResponse(t))
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body taskRequest
	if err := decodeBody(r, h.validate, &body); err != nil {
		h.errs.write(w, r, "update task", err)
		return
	}
	t, err := h.update.Execute(r.Context(), task.UpdateTaskInput{
		Owner:       identity.UserID,
		ID:          chi.URLParam(r, "id"),
		ProjectID:   body.ProjectID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrTaskNotFound) {
			writeErr(w, http.StatusNotFound, "Task not found or does not belong to the user")
			return
		}
		h.errs.write(w, r, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse(t))
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.delete.Execute(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		h.errs.write(w, r, "delete task", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
