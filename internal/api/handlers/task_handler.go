package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/usecase"
	"github.com/sirupsen/logrus"
)

type TaskHandler struct {
	taskService *usecase.TaskService
	log         logrus.FieldLogger
}

func NewTaskHandler(taskService *usecase.TaskService, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// создаем новую задачу
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTaskRequest
	if err := decodeJSON(r, &req, false); err != nil {
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskId, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskId)
	if err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskId, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	var req entity.UpdateTaskRequest
	if err := decodeJSON(r, &req, false); err != nil {
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskId, &req)
	if err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskId, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskId); err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	var status *string
	if values, ok := r.URL.Query()["status"]; ok {
		status = &values[0]
	}

	tasks, err := h.taskService.ListTasks(r.Context(), status)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
