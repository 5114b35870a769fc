package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"
)

// Известные значения Type: "cart", "authentication", "order", "chat".
// Поле оставлено открытой строкой — продюсеры уведомлений живут вне этого ядра.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Message string    `gorm:"not null"`
	Type    string    `gorm:"not null"`
	Status  string    `gorm:"not null;default:'unread';check:status IN ('unread','read')"`

	CreatedAt time.Time
}
