package handlers

import (
	"net/http"
	"time"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"

	"go.uber.org/zap"
)

type CommentHandler struct {
	CommentService CommentService
}

func NewCommentHandler(commentService CommentService) CommentHandler {
	return CommentHandler{
		CommentService: commentService,
	}
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	comments, err := h.CommentService.ListComments(r.Context(), p.UserID, taskID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("comments", dto.FromCommentList(comments)))
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.CommentService.CreateComment(r.Context(), p.UserID, req.Task, req.Content, req.ParentComment)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Комментарий создан",
		zap.String("comment_id", created.ID.String()),
		zap.String("task_id", req.Task.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("comment", dto.FromComment(created)))
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.CommentService.UpdateComment(r.Context(), p.UserID, commentID, req.Content)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Комментарий изменён",
		zap.String("comment_id", commentID.String()))

	responseWithJSON(w, http.StatusOK, toPayload("comment", dto.FromComment(updated)))
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.CommentService.DeleteComment(r.Context(), p.UserID, commentID); err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Комментарий удалён",
		zap.String("comment_id", commentID.String()))

	responseWithJSON(w, http.StatusOK, toPayload("message", "комментарий удалён"))
}
