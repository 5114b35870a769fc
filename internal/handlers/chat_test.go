package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thanhdo/marketly/internal/handlers/dto"
	"github.com/thanhdo/marketly/internal/middleware"
	"github.com/thanhdo/marketly/internal/websocket"
)

const testUserHeader = "X-Test-User"

// newChatRouter собирает роутер с подстановкой пользователя из заголовка
// вместо полного JWT middleware
func newChatRouter(store *mockChatStore, hub *websocket.Hub) *gin.Engine {
	gin.SetMode(gin.TestMode)

	messageH := NewMessageHandler(store, hub)
	chatH := NewChatHandler(store, messageH)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(testUserHeader))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(middleware.UserIDKey, id)
		c.Next()
	})

	r.POST("/api/v1/chat/threads", chatH.GetOrCreateThread)
	r.GET("/api/v1/chat/threads", chatH.GetMyThreads)
	r.GET("/api/v1/chat/threads/:id/messages", chatH.GetThreadMessages)
	r.POST("/api/v1/chat/threads/:id/messages", chatH.SendMessage)
	r.GET("/api/v1/chat/threads/:id/last-message", chatH.GetLastMessage)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, asUser uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(testUserHeader, asUser.String())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestGetOrCreateThreadOrderIndependent(t *testing.T) {
	store := newMockChatStore()
	r := newChatRouter(store, websocket.NewHub())

	userA := uuid.New()
	userB := uuid.New()

	rr1 := doJSON(t, r, http.MethodPost, "/api/v1/chat/threads", userA, gin.H{"user_id": userB.String()})
	rr2 := doJSON(t, r, http.MethodPost, "/api/v1/chat/threads", userB, gin.H{"user_id": userA.String()})

	if rr1.Code != http.StatusOK || rr2.Code != http.StatusOK {
		t.Fatalf("expected 200/200, got %d/%d", rr1.Code, rr2.Code)
	}

	var resp1, resp2 struct {
		Thread dto.ThreadResponse `json:"thread"`
	}
	if err := json.Unmarshal(rr1.Body.Bytes(), &resp1); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if err := json.Unmarshal(rr2.Body.Bytes(), &resp2); err != nil {
		t.Fatalf("bad response: %v", err)
	}

	if resp1.Thread.ID != resp2.Thread.ID {
		t.Errorf("(A,B) and (B,A) produced different threads: %s vs %s", resp1.Thread.ID, resp2.Thread.ID)
	}
	if resp1.Thread.LastMessage != nil {
		t.Error("fresh thread must have null last_message")
	}
}

func TestGetOrCreateThreadWithSelf(t *testing.T) {
	store := newMockChatStore()
	r := newChatRouter(store, websocket.NewHub())

	userA := uuid.New()
	rr := doJSON(t, r, http.MethodPost, "/api/v1/chat/threads", userA, gin.H{"user_id": userA.String()})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self-thread, got %d", rr.Code)
	}
}

func TestSendMessageEmptyBody(t *testing.T) {
	store := newMockChatStore()
	r := newChatRouter(store, websocket.NewHub())

	userA, _, threadID := setupThread(t, store)

	path := fmt.Sprintf("/api/v1/chat/threads/%s/messages", threadID)
	rr := doJSON(t, r, http.MethodPost, path, userA, gin.H{"body": ""})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
	if len(store.messages[threadID]) != 0 {
		t.Error("empty message was persisted")
	}
}

func TestSendMessageUnknownThread(t *testing.T) {
	store := newMockChatStore()
	r := newChatRouter(store, websocket.NewHub())

	path := fmt.Sprintf("/api/v1/chat/threads/%s/messages", uuid.New())
	rr := doJSON(t, r, http.MethodPost, path, uuid.New(), gin.H{"body": "hi"})

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestHistoryForbiddenForOutsider(t *testing.T) {
	store := newMockChatStore()
	r := newChatRouter(store, websocket.NewHub())

	_, _, threadID := setupThread(t, store)

	path := fmt.Sprintf("/api/v1/chat/threads/%s/messages", threadID)
	rr := doJSON(t, r, http.MethodGet, path, uuid.New(), nil)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

// Полный сценарий: A открывает тред, B подписывается на комнату,
// A шлет "hello" по HTTP — B получает кадр в реальном времени,
// история и last_message сходятся.
func TestChatEndToEnd(t *testing.T) {
	store := newMockChatStore()
	hub := websocket.NewHub()
	r := newChatRouter(store, hub)

	userA := uuid.New()
	userB := uuid.New()

	// A открывает тред
	rr := doJSON(t, r, http.MethodPost, "/api/v1/chat/threads", userA, gin.H{"user_id": userB.String()})
	if rr.Code != http.StatusOK {
		t.Fatalf("open thread: %d", rr.Code)
	}
	var opened struct {
		Thread dto.ThreadResponse `json:"thread"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &opened); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if opened.Thread.LastMessage != nil {
		t.Fatal("new thread must start with null last_message")
	}
	threadID := opened.Thread.ID

	// B подключается к комнате
	clientB := websocket.NewClient(hub, nil, userB)
	hub.JoinRoom(clientB, threadID)

	// A отправляет сообщение по HTTP
	path := fmt.Sprintf("/api/v1/chat/threads/%s/messages", threadID)
	rr = doJSON(t, r, http.MethodPost, path, userA, gin.H{"body": "hello"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("send: %d (%s)", rr.Code, rr.Body.String())
	}
	var sent dto.MessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &sent); err != nil {
		t.Fatalf("bad send response: %v", err)
	}

	// B получил кадр
	events := drainEvents(t, clientB)
	if len(events) != 1 || events[0].Type != websocket.TypeMessage {
		t.Fatalf("receiver expected one message event, got %+v", events)
	}
	var received dto.MessageResponse
	if err := json.Unmarshal(events[0].Data, &received); err != nil {
		t.Fatalf("bad event payload: %v", err)
	}
	if received.Body != "hello" {
		t.Errorf("expected 'hello', got %q", received.Body)
	}

	// last_message указывает на отправленное сообщение
	rr = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/chat/threads/%s/last-message", threadID), userB, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("last-message: %d", rr.Code)
	}
	var lastResp struct {
		LastMessage *struct {
			MessageID uuid.UUID `json:"message_id"`
		} `json:"last_message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &lastResp); err != nil {
		t.Fatalf("bad last-message response: %v", err)
	}
	if lastResp.LastMessage == nil || lastResp.LastMessage.MessageID != sent.ID {
		t.Error("last_message does not point at the sent message")
	}

	// История содержит ровно одно сообщение
	rr = doJSON(t, r, http.MethodGet, path, userB, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("history: %d", rr.Code)
	}
	var history struct {
		Messages []dto.MessageResponse `json:"messages"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &history); err != nil {
		t.Fatalf("bad history response: %v", err)
	}
	if len(history.Messages) != 1 || history.Messages[0].Body != "hello" {
		t.Errorf("expected single 'hello' entry, got %+v", history.Messages)
	}
}
