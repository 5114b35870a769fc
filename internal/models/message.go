package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ThreadID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_thread_seq"`
	SenderID uuid.UUID `gorm:"type:uuid;not null"`
	Body     string    `gorm:"not null"`
	ImageURL string

	// Порядковый номер внутри треда, выдается транзакционно при вставке
	Seq int64 `gorm:"not null;uniqueIndex:idx_thread_seq"`

	CreatedAt time.Time

	// Связи
	Sender User   `gorm:"foreignKey:SenderID"`
	Thread Thread `gorm:"foreignKey:ThreadID"`
}
