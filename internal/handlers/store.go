package handlers

import (
	"github.com/google/uuid"

	"github.com/thanhdo/marketly/internal/models"
)

// Интерфейсы хранилища, которые нужны обработчикам. Реализуются
// *database.Database; в тестах подменяются моками.

type ChatStore interface {
	GetOrCreateThread(userA, userB uuid.UUID) (*models.Thread, error)
	GetThread(id uuid.UUID) (*models.Thread, error)
	IsThreadParticipant(threadID, userID uuid.UUID) (bool, error)
	GetLastMessage(threadID uuid.UUID) (*models.LastMessage, error)
	GetUserThreads(userID uuid.UUID) ([]models.Thread, error)
	SaveMessage(senderID, threadID uuid.UUID, body, imageURL string) (*models.Message, error)
	GetThreadMessages(threadID uuid.UUID, limit int, beforeSeq int64) ([]models.Message, error)
}

type NotificationStore interface {
	CreateNotification(userID uuid.UUID, message, ntype string) (*models.Notification, error)
	GetUserNotifications(userID uuid.UUID) ([]models.Notification, error)
	MarkNotificationRead(userID, notificationID uuid.UUID) (*models.Notification, error)
	DeleteNotification(userID, notificationID uuid.UUID) error
}

type UserStore interface {
	SaveUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	UpdateLastSeen(id string) error
}
