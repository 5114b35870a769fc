package handlers

import (
	"bytes"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thanhdo/marketly/internal/database"
	"github.com/thanhdo/marketly/internal/models"
)

// Моки хранилища в памяти, повторяющие контракт *database.Database

type mockChatStore struct {
	byPair   map[string]*models.Thread
	byID     map[uuid.UUID]*models.Thread
	messages map[uuid.UUID][]models.Message

	saveErr error // если задана, SaveMessage падает до записи
}

func newMockChatStore() *mockChatStore {
	return &mockChatStore{
		byPair:   make(map[string]*models.Thread),
		byID:     make(map[uuid.UUID]*models.Thread),
		messages: make(map[uuid.UUID][]models.Message),
	}
}

func pairKey(a, b uuid.UUID) (uuid.UUID, uuid.UUID, string) {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return a, b, a.String() + "|" + b.String()
}

func (s *mockChatStore) GetOrCreateThread(userA, userB uuid.UUID) (*models.Thread, error) {
	if userA == userB {
		return nil, database.ErrSelfThread
	}

	a, b, key := pairKey(userA, userB)
	if t, ok := s.byPair[key]; ok {
		return t, nil
	}

	now := time.Now()
	t := &models.Thread{
		ID:        uuid.New(),
		UserA:     a,
		UserB:     b,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.byPair[key] = t
	s.byID[t.ID] = t
	return t, nil
}

func (s *mockChatStore) GetThread(id uuid.UUID) (*models.Thread, error) {
	if t, ok := s.byID[id]; ok {
		return t, nil
	}
	return nil, database.ErrThreadNotFound
}

func (s *mockChatStore) IsThreadParticipant(threadID, userID uuid.UUID) (bool, error) {
	t, err := s.GetThread(threadID)
	if err != nil {
		return false, err
	}
	return t.UserA == userID || t.UserB == userID, nil
}

func (s *mockChatStore) GetLastMessage(threadID uuid.UUID) (*models.LastMessage, error) {
	t, err := s.GetThread(threadID)
	if err != nil {
		return nil, err
	}
	if t.LastMessageID == nil {
		return nil, nil
	}
	return &models.LastMessage{MessageID: *t.LastMessageID, Timestamp: *t.LastMessageAt}, nil
}

func (s *mockChatStore) GetUserThreads(userID uuid.UUID) ([]models.Thread, error) {
	var threads []models.Thread
	for _, t := range s.byID {
		if t.UserA == userID || t.UserB == userID {
			threads = append(threads, *t)
		}
	}
	return threads, nil
}

func (s *mockChatStore) SaveMessage(senderID, threadID uuid.UUID, body, imageURL string) (*models.Message, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	if strings.TrimSpace(body) == "" {
		return nil, database.ErrValidation
	}

	t, err := s.GetThread(threadID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	msg := models.Message{
		ID:        uuid.New(),
		ThreadID:  threadID,
		SenderID:  senderID,
		Body:      body,
		ImageURL:  imageURL,
		Seq:       t.LastSeq + 1,
		CreatedAt: now,
	}
	s.messages[threadID] = append(s.messages[threadID], msg)

	t.LastSeq = msg.Seq
	t.LastMessageID = &msg.ID
	t.LastMessageAt = &msg.CreatedAt
	t.UpdatedAt = now

	return &msg, nil
}

func (s *mockChatStore) GetThreadMessages(threadID uuid.UUID, limit int, beforeSeq int64) ([]models.Message, error) {
	if _, err := s.GetThread(threadID); err != nil {
		return nil, err
	}

	var result []models.Message
	for _, m := range s.messages[threadID] {
		if beforeSeq > 0 && m.Seq >= beforeSeq {
			continue
		}
		result = append(result, m)
	}

	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result, nil
}

type mockNotificationStore struct {
	byID map[uuid.UUID]*models.Notification
}

func newMockNotificationStore() *mockNotificationStore {
	return &mockNotificationStore{byID: make(map[uuid.UUID]*models.Notification)}
}

func (s *mockNotificationStore) CreateNotification(userID uuid.UUID, message, ntype string) (*models.Notification, error) {
	if message == "" || ntype == "" {
		return nil, database.ErrValidation
	}
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		Type:      ntype,
		Status:    models.NotificationStatusUnread,
		CreatedAt: time.Now(),
	}
	s.byID[n.ID] = n
	return n, nil
}

func (s *mockNotificationStore) GetUserNotifications(userID uuid.UUID) ([]models.Notification, error) {
	var result []models.Notification
	for _, n := range s.byID {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (s *mockNotificationStore) MarkNotificationRead(userID, notificationID uuid.UUID) (*models.Notification, error) {
	n, ok := s.byID[notificationID]
	if !ok || n.UserID != userID {
		return nil, database.ErrNotFound
	}
	n.Status = models.NotificationStatusRead
	return n, nil
}

func (s *mockNotificationStore) DeleteNotification(userID, notificationID uuid.UUID) error {
	n, ok := s.byID[notificationID]
	if !ok || n.UserID != userID {
		return database.ErrNotFound
	}
	delete(s.byID, notificationID)
	return nil
}
