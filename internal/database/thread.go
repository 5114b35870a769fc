package database

import (
	"bytes"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thanhdo/marketly/internal/models"
)

// canonicalPair приводит пару участников к порядку (min, max),
// чтобы тред для (A,B) и (B,A) был одним и тем же.
func canonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

// GetOrCreateThread возвращает тред для пары пользователей, создавая его при
// первом контакте. Вставка идет через ON CONFLICT DO NOTHING по каноничной
// паре — при одновременных вызовах лишняя вставка молча отбрасывается и оба
// вызова читают одну и ту же запись.
func (d *Database) GetOrCreateThread(userA, userB uuid.UUID) (*models.Thread, error) {
	if userA == userB {
		return nil, ErrSelfThread
	}

	a, b := canonicalPair(userA, userB)

	thread := models.Thread{
		UserA:     a,
		UserB:     b,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := d.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a"}, {Name: "user_b"}},
			DoNothing: true,
		}).
		Create(&thread).Error
	if err != nil {
		return nil, err
	}

	// При конфликте Create не заполняет ID — перечитываем в любом случае
	var existing models.Thread
	if err := d.db.Where("user_a = ? AND user_b = ?", a, b).First(&existing).Error; err != nil {
		return nil, err
	}

	return &existing, nil
}

func (d *Database) GetThread(id uuid.UUID) (*models.Thread, error) {
	var thread models.Thread
	if err := d.db.First(&thread, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

// IsThreadParticipant проверяет, что пользователь — участник треда
func (d *Database) IsThreadParticipant(threadID, userID uuid.UUID) (bool, error) {
	thread, err := d.GetThread(threadID)
	if err != nil {
		return false, err
	}
	return thread.UserA == userID || thread.UserB == userID, nil
}

// GetLastMessage возвращает указатель на последнее сообщение или nil,
// если в треде еще не писали
func (d *Database) GetLastMessage(threadID uuid.UUID) (*models.LastMessage, error) {
	thread, err := d.GetThread(threadID)
	if err != nil {
		return nil, err
	}

	if thread.LastMessageID == nil {
		return nil, nil
	}

	return &models.LastMessage{
		MessageID: *thread.LastMessageID,
		Timestamp: *thread.LastMessageAt,
	}, nil
}

// GetUserThreads возвращает треды пользователя, свежие сверху
func (d *Database) GetUserThreads(userID uuid.UUID) ([]models.Thread, error) {
	var threads []models.Thread
	err := d.db.
		Where("user_a = ? OR user_b = ?", userID, userID).
		Order("updated_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, err
	}
	return threads, nil
}
