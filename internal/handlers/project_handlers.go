package handlers

import (
	"net/http"
	"time"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/project"
	"taskBoard/internal/service"

	"go.uber.org/zap"
)

type ProjectHandler struct {
	ProjectService ProjectService
}

func NewProjectHandler(projectService ProjectService) ProjectHandler {
	return ProjectHandler{
		ProjectService: projectService,
	}
}

func statusPtr(raw *string) *project.Status {
	if raw == nil {
		return nil
	}
	s := project.Status(*raw)
	return &s
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}

	projects, err := h.ProjectService.ListProjects(r.Context(), p.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Проекты получены",
		zap.Int("count", len(projects)),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("projects", dto.FromProjectList(projects)))
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.ProjectService.CreateProject(r.Context(), p.UserID, service.NewProject{
		Name:        req.Name,
		Description: req.Description,
		Status:      project.Status(req.Status),
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Проект создан",
		zap.String("project_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("project", dto.FromProject(created)))
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.ProjectService.GetProject(r.Context(), p.UserID, projectID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("project", dto.FromProject(found)))
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.ProjectService.UpdateProject(r.Context(), p.UserID, projectID, service.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      statusPtr(req.Status),
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Проект обновлён",
		zap.String("project_id", projectID.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("project", dto.FromProject(updated)))
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.ProjectService.DeleteProject(r.Context(), p.UserID, projectID); err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Проект удалён",
		zap.String("project_id", projectID.String()))

	responseWithJSON(w, http.StatusOK, toPayload("message", "проект удалён"))
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := h.ProjectService.AddMember(r.Context(), p.UserID, projectID, req.Email, project.MemberRole(req.Role))
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Участник добавлен",
		zap.String("project_id", projectID.String()),
		zap.Int("members", len(updated.Members)))

	responseWithJSON(w, http.StatusOK, toPayload("project", dto.FromProject(updated)))
}

func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	targetID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	updated, err := h.ProjectService.RemoveMember(r.Context(), p.UserID, projectID, targetID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Участник удалён",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", targetID.String()))

	responseWithJSON(w, http.StatusOK, toPayload("project", dto.FromProject(updated)))
}
