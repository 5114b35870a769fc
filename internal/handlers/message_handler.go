package handlers

import (
	"encoding/json"
	"log"

	"github.com/thanhdo/marketly/internal/database"
	"github.com/thanhdo/marketly/internal/handlers/dto"
	"github.com/thanhdo/marketly/internal/models"
	"github.com/thanhdo/marketly/internal/websocket"

	"github.com/google/uuid"
)

// MessageHandler — единственный путь доставки сообщений: HTTP-ручка и
// websocket-события оба вызывают Send. Сначала запись в хранилище, рассылка
// в комнату только после успешной записи.
type MessageHandler struct {
	store ChatStore
	hub   *websocket.Hub
}

func NewMessageHandler(store ChatStore, hub *websocket.Hub) *MessageHandler {
	return &MessageHandler{
		store: store,
		hub:   hub,
	}
}

// Send сохраняет сообщение и рассылает его подписчикам комнаты треда.
// При ошибке записи рассылки не происходит.
func (h *MessageHandler) Send(senderID, threadID uuid.UUID, body, imageURL string) (*models.Message, error) {
	ok, err := h.store.IsThreadParticipant(threadID, senderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, websocket.ErrNotParticipant
	}

	message, err := h.store.SaveMessage(senderID, threadID, body, imageURL)
	if err != nil {
		log.Printf("Failed to save message: %v", err)
		return nil, err
	}

	h.broadcast(message)

	return message, nil
}

func (h *MessageHandler) broadcast(message *models.Message) {
	ev := websocket.Event{
		Type:      websocket.TypeMessage,
		RoomID:    &message.ThreadID,
		UserID:    message.SenderID,
		Timestamp: message.CreatedAt,
	}

	data, err := json.Marshal(dto.NewMessageResponse(message))
	if err != nil {
		log.Printf("Failed to marshal message %s: %v", message.ID, err)
		return
	}
	ev.Data = data

	evData, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal event for message %s: %v", message.ID, err)
		return
	}

	h.hub.SendToRoom(message.ThreadID, evData)
}

// HandleEvent обрабатывает входящие websocket-события
func (h *MessageHandler) HandleEvent(client *websocket.Client, ev *websocket.Event) error {
	switch ev.Type {
	case websocket.TypeRoomJoin:
		return h.handleJoin(client, ev)

	case websocket.TypeRoomLeave:
		if ev.RoomID != nil {
			client.Hub.LeaveRoom(client, *ev.RoomID)
		}
		return nil

	case websocket.TypeMessage:
		return h.handleMessage(client, ev)

	default:
		log.Printf("Unknown event type: %s", ev.Type)
		return nil
	}
}

// handleJoin подписывает клиента на комнату только после проверки,
// что он действительно участник треда
func (h *MessageHandler) handleJoin(client *websocket.Client, ev *websocket.Event) error {
	if ev.RoomID == nil {
		return websocket.ErrInvalidMessage
	}

	ok, err := h.store.IsThreadParticipant(*ev.RoomID, client.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return websocket.ErrNotParticipant
	}

	client.Hub.JoinRoom(client, *ev.RoomID)
	return nil
}

func (h *MessageHandler) handleMessage(client *websocket.Client, ev *websocket.Event) error {
	if ev.RoomID == nil {
		return websocket.ErrInvalidMessage
	}

	var payload dto.SendMessagePayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return websocket.ErrInvalidMessage
	}

	if payload.Body == "" {
		return database.ErrValidation
	}

	message, err := h.Send(client.UserID, *ev.RoomID, payload.Body, payload.ImageURL)
	if err != nil {
		return err
	}

	// Подтверждение отправителю: сообщение записано и разослано
	return client.SendEvent(websocket.TypeMessageAck, &message.ThreadID, dto.NewMessageResponse(message))
}
