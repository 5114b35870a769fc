package models

import (
	"time"

	"github.com/google/uuid"
)

// Thread — переписка между двумя пользователями. Пара участников хранится
// в каноническом порядке (UserA < UserB), чтобы уникальный индекс исключал
// дубликаты при одновременном первом контакте.
type Thread struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserA uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_thread_pair"`
	UserB uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_thread_pair"`

	// Денормализованный указатель на последнее сообщение, NULL до первого сообщения
	LastMessageID *uuid.UUID `gorm:"type:uuid"`
	LastMessageAt *time.Time

	// Счетчик для сквозной нумерации сообщений внутри треда
	LastSeq int64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LastMessage — сводка для превью списка переписок
type LastMessage struct {
	MessageID uuid.UUID `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
}
