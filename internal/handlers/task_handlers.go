package handlers

import (
	"net/http"
	"time"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

// taskPatch собирает частичное обновление; null в assigned_to и due_date очищает поле
func taskPatch(req dto.UpdateTaskRequest) service.TaskPatch {
	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		s := dto.ParseStatus(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		pr := task.Priority(*req.Priority)
		patch.Priority = &pr
	}
	if req.AssignedTo.Set {
		id := uuid.Nil
		if req.AssignedTo.Value != nil {
			id = *req.AssignedTo.Value
		}
		patch.AssignedTo = &id
	}
	if req.DueDate.Set {
		var due time.Time
		if req.DueDate.Value != nil {
			due = *req.DueDate.Value
		}
		patch.DueDate = &due
	}
	return patch
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	filter := service.TaskFilter{ProjectID: projectID}
	query := r.URL.Query()
	if raw := query.Get("status"); raw != "" {
		s := dto.ParseStatus(raw)
		filter.Status = &s
	}
	if raw := query.Get("priority"); raw != "" {
		pr := task.Priority(raw)
		filter.Priority = &pr
	}
	if raw := query.Get("assigned_to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("querry", "assigned_to"),
				zap.String("value", raw))
			responseWithError(w, r, http.StatusBadRequest, service.CodeValidation, "неверный идентификатор assigned_to", nil)
			return
		}
		filter.AssignedTo = &id
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), p.UserID, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.String("project_id", projectID.String()),
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks)))
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	logger.Info("HTTP: Вызов сервиса для создания задачи",
		zap.String("project_id", req.Project.String()))

	created, err := h.TaskService.CreateTask(r.Context(), p.UserID, service.NewTask{
		ProjectID:   req.Project,
		Title:       req.Title,
		Description: req.Description,
		Status:      dto.ParseStatus(req.Status),
		Priority:    task.Priority(req.Priority),
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Int("position", created.Position),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("task", dto.FromTask(created)))
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.TaskService.GetTask(r.Context(), p.UserID, taskID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(found)))
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), p.UserID, taskID, taskPatch(req))
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", taskID.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(updated)))
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.TaskService.UpdateStatus(r.Context(), p.UserID, taskID, dto.ParseStatus(req.Status))
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Статус задачи изменён",
		zap.String("task_id", taskID.String()),
		zap.String("status", string(updated.Status)))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(updated)))
}

func (h *TaskHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdatePositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var status *task.Status
	if req.Status != nil {
		s := dto.ParseStatus(*req.Status)
		status = &s
	}

	updated, err := h.TaskService.UpdatePosition(r.Context(), p.UserID, taskID, req.Position, status)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Позиция задачи изменена",
		zap.String("task_id", taskID.String()),
		zap.Int("position", updated.Position))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(updated)))
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), p.UserID, taskID); err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", taskID.String()))

	responseWithJSON(w, http.StatusOK, toPayload("message", "задача удалена"))
}
