package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/task"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/http/middleware"
)

type TaskHandler struct {
	create   *task.CreateTask
	list     *task.ListTasks
	get      *task.GetTask
	update   *task.UpdateTask
	remove   *task.DeleteTask
	validate *validator.Validate
	log      zerolog.Logger
}

func NewTaskHandler(create *task.CreateTask, list *task.ListTasks, get *task.GetTask, update *task.UpdateTask, remove *task.DeleteTask, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		create:   create,
		list:     list,
		get:      get,
		update:   update,
		remove:   remove,
		validate: validator.New(),
		log:      log,
	}
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// requestUserID resolves the authenticated user's id from the request
// context. The auth middleware guarantees it is present on these routes; a
// malformed value still gets a 401 rather than a panic.
func requestUserID(w http.ResponseWriter, r *http.Request) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "Authentication required")
		return bson.ObjectID{}, false
	}
	return oid, true
}

func taskIDParam(w http.ResponseWriter, r *http.Request) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, "Task not found")
		return bson.ObjectID{}, false
	}
	return oid, true
}

func (h *TaskHandler) writeTaskErr(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domerrors.ErrTaskNotFound):
		writeErr(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, domerrors.ErrTaskForbidden):
		writeErr(w, http.StatusForbidden, "You do not have access to this task")
	default:
		h.log.Error().Err(err).Msg("task operation failed")
		writeErr(w, http.StatusInternalServerError, fallback)
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	result, err := h.list.Execute(r.Context(), task.ListTasksInput{UserID: userID})
	if err != nil {
		h.writeTaskErr(w, err, "Failed to fetch tasks")
		return
	}
	tasks := make([]taskResponse, 0, len(result.Tasks))
	for _, t := range result.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(tasks),
		"tasks":   tasks,
	})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Status      string     `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
		Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
		DueDate     *time.Time `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Title == "" {
		writeErr(w, http.StatusBadRequest, "Title is required")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid status or priority")
		return
	}

	result, err := h.create.Execute(r.Context(), task.CreateTaskInput{
		UserID:      userID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
	})
	if err != nil {
		h.writeTaskErr(w, err, "Failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"task":    toTaskResponse(result.Task),
	})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}
	result, err := h.get.Execute(r.Context(), task.GetTaskInput{UserID: userID, TaskID: taskID})
	if err != nil {
		h.writeTaskErr(w, err, "Failed to fetch task")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"task":    toTaskResponse(result.Task),
	})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Status      *string    `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
		Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
		DueDate     *time.Time `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid status or priority")
		return
	}

	result, err := h.update.Execute(r.Context(), task.UpdateTaskInput{
		UserID:      userID,
		TaskID:      taskID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
	})
	if err != nil {
		h.writeTaskErr(w, err, "Failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"task":    toTaskResponse(result.Task),
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}
	if _, err := h.remove.Execute(r.Context(), task.DeleteTaskInput{UserID: userID, TaskID: taskID}); err != nil {
		h.writeTaskErr(w, err, "Failed to delete task")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Task deleted successfully",
	})
}
