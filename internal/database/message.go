package database

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thanhdo/marketly/internal/models"
)

// SaveMessage — единственная точка записи сообщений: и HTTP-путь, и websocket
// идут сюда. В одной транзакции берем блокировку на строку треда, выдаем
// следующий seq, вставляем сообщение и двигаем указатель last_message.
func (d *Database) SaveMessage(senderID, threadID uuid.UUID, body, imageURL string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrValidation
	}

	var message models.Message

	err := d.db.Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&thread, "id = ?", threadID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrThreadNotFound
			}
			return err
		}

		message = models.Message{
			ThreadID:  threadID,
			SenderID:  senderID,
			Body:      body,
			ImageURL:  imageURL,
			Seq:       thread.LastSeq + 1,
			CreatedAt: time.Now(),
		}

		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		return tx.Model(&thread).Updates(map[string]interface{}{
			"last_seq":        message.Seq,
			"last_message_id": message.ID,
			"last_message_at": message.CreatedAt,
			"updated_at":      message.CreatedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// GetThreadMessages возвращает сообщения треда по возрастанию seq.
// limit <= 0 — вся история; beforeSeq > 0 — страница до указанного номера.
func (d *Database) GetThreadMessages(threadID uuid.UUID, limit int, beforeSeq int64) ([]models.Message, error) {
	if _, err := d.GetThread(threadID); err != nil {
		return nil, err
	}

	query := d.db.Where("thread_id = ?", threadID)

	if beforeSeq > 0 {
		query = query.Where("seq < ?", beforeSeq)
	}

	if limit > 0 {
		// Берем хвост и разворачиваем, чтобы старые были первыми
		var page []models.Message
		err := query.Order("seq DESC").Limit(limit).Find(&page).Error
		if err != nil {
			return nil, err
		}
		for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
			page[i], page[j] = page[j], page[i]
		}
		return page, nil
	}

	var messages []models.Message
	if err := query.Order("seq ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
