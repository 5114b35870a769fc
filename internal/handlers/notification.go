package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thanhdo/marketly/internal/database"
	"github.com/thanhdo/marketly/internal/handlers/dto"
	"github.com/thanhdo/marketly/internal/middleware"
)

type NotificationHandler struct {
	store NotificationStore
}

func NewNotificationHandler(store NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// CreateNotification создает уведомление для текущего пользователя
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.store.CreateNotification(userID, req.Message, req.Type)
	if err != nil {
		if errors.Is(err, database.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message and type are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// GetNotifications возвращает уведомления текущего пользователя
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	notifications, err := h.store.GetUserNotifications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkAsRead помечает уведомление прочитанным. Чужие уведомления
// неотличимы от несуществующих.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	notification, err := h.store.MarkNotificationRead(userID, notificationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification as read"})
		return
	}

	c.JSON(http.StatusOK, notification)
}

// DeleteNotification удаляет уведомление текущего пользователя
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.store.DeleteNotification(userID, notificationID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification deleted successfully"})
}
