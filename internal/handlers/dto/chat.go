package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/thanhdo/marketly/internal/models"
)

// SendMessagePayload — тело отправки сообщения (общее для HTTP и websocket)
type SendMessagePayload struct {
	Body     string `json:"body"`
	ImageURL string `json:"image_url,omitempty"`
}

// MessageResponse — исходящее представление сообщения
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	ThreadID  uuid.UUID `json:"thread_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url,omitempty"`
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		ImageURL:  m.ImageURL,
		Seq:       m.Seq,
		CreatedAt: m.CreatedAt,
	}
}

// ThreadResponse — исходящее представление треда
type ThreadResponse struct {
	ID           uuid.UUID           `json:"id"`
	Participants []uuid.UUID         `json:"participants"`
	LastMessage  *models.LastMessage `json:"last_message"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func NewThreadResponse(t *models.Thread) ThreadResponse {
	resp := ThreadResponse{
		ID:           t.ID,
		Participants: []uuid.UUID{t.UserA, t.UserB},
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.LastMessageID != nil && t.LastMessageAt != nil {
		resp.LastMessage = &models.LastMessage{
			MessageID: *t.LastMessageID,
			Timestamp: *t.LastMessageAt,
		}
	}
	return resp
}
