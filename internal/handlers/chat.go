package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thanhdo/marketly/internal/database"
	"github.com/thanhdo/marketly/internal/handlers/dto"
	"github.com/thanhdo/marketly/internal/middleware"
)

type ChatHandler struct {
	store          ChatStore
	messageHandler *MessageHandler
}

func NewChatHandler(store ChatStore, messageHandler *MessageHandler) *ChatHandler {
	return &ChatHandler{store: store, messageHandler: messageHandler}
}

// GetOrCreateThread возвращает тред с указанным пользователем,
// создавая его при первом контакте
func (h *ChatHandler) GetOrCreateThread(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receiverID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	thread, err := h.store.GetOrCreateThread(userID, receiverID)
	if err != nil {
		if errors.Is(err, database.ErrSelfThread) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open thread with yourself"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open thread"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"thread": dto.NewThreadResponse(thread)})
}

// GetMyThreads возвращает список тредов текущего пользователя
func (h *ChatHandler) GetMyThreads(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	threads, err := h.store.GetUserThreads(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get threads"})
		return
	}

	result := make([]dto.ThreadResponse, len(threads))
	for i := range threads {
		result[i] = dto.NewThreadResponse(&threads[i])
	}

	c.JSON(http.StatusOK, gin.H{"threads": result})
}

// GetThreadMessages возвращает историю сообщений треда
func (h *ChatHandler) GetThreadMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return
	}

	if !h.requireParticipant(c, threadID, userID) {
		return
	}

	// Параметры пагинации; без них отдаем всю историю
	limit := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var beforeSeq int64
	if before := c.Query("before"); before != "" {
		if parsed, err := strconv.ParseInt(before, 10, 64); err == nil && parsed > 0 {
			beforeSeq = parsed
		}
	}

	messages, err := h.store.GetThreadMessages(threadID, limit, beforeSeq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		result[i] = dto.NewMessageResponse(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": result,
		"has_more": limit > 0 && len(messages) == limit,
	})
}

// SendMessage отправляет сообщение через HTTP. Запись и рассылка идут через
// тот же MessageHandler, что и websocket-путь.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return
	}

	if !h.requireParticipant(c, threadID, userID) {
		return
	}

	var req struct {
		Body     string `json:"body" binding:"required"`
		ImageURL string `json:"image_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageHandler.Send(userID, threadID, req.Body, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message body is required"})
		case errors.Is(err, database.ErrThreadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "thread not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewMessageResponse(message))
}

// GetLastMessage возвращает указатель последнего сообщения треда
func (h *ChatHandler) GetLastMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return
	}

	if !h.requireParticipant(c, threadID, userID) {
		return
	}

	last, err := h.store.GetLastMessage(threadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get last message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"last_message": last})
}

func (h *ChatHandler) requireParticipant(c *gin.Context, threadID, userID uuid.UUID) bool {
	ok, err := h.store.IsThreadParticipant(threadID, userID)
	if err != nil {
		if errors.Is(err, database.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "thread not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check thread"})
		}
		return false
	}

	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this thread"})
		return false
	}

	return true
}
