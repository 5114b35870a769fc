package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения
	maxMessageSize = 64 * 1024 // 64KB
)

// EventHandler обрабатывает входящие события клиента. Сюда уходят и join,
// и отправка сообщений — hub сам никакой политики не проверяет.
type EventHandler interface {
	HandleEvent(client *Client, ev *Event) error
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Rooms  map[uuid.UUID]bool
	Hub    *Hub
	mu     sync.RWMutex
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Rooms:  make(map[uuid.UUID]bool),
		Hub:    hub,
	}
}

// ReadPump читает события от клиента
func (c *Client) ReadPump(handler EventHandler) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev Event
		err := c.Conn.ReadJSON(&ev)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		// Отправителю не верим на слово
		ev.UserID = c.UserID

		if ev.Type == TypePong {
			continue
		}

		if handler != nil {
			if err := handler.HandleEvent(c, &ev); err != nil {
				log.Printf("Error handling event: %v", err)
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump отправляет события клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendEvent(evType EventType, roomID *uuid.UUID, data interface{}) error {
	ev := Event{
		Type:      evType,
		RoomID:    roomID,
		UserID:    c.UserID,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		ev.Data = jsonData
	}

	evData, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	select {
	case c.Send <- evData:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	c.SendEvent(TypeError, nil, map[string]string{
		"error": errorMsg,
	})
}

func (c *Client) IsInRoom(roomID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Rooms[roomID]
}
