package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учетная запись. Чат и уведомления пользовательские записи не меняют,
// только читают идентификаторы; пишет сюда лишь регистрация.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	AvatarURL    string
	LastSeenAt   time.Time
	CreatedAt    time.Time
}
