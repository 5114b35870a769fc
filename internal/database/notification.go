package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thanhdo/marketly/internal/models"
)

func (d *Database) CreateNotification(userID uuid.UUID, message, ntype string) (*models.Notification, error) {
	if message == "" || ntype == "" {
		return nil, ErrValidation
	}

	notification := models.Notification{
		UserID:    userID,
		Message:   message,
		Type:      ntype,
		Status:    models.NotificationStatusUnread,
		CreatedAt: time.Now(),
	}

	if err := d.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

// GetUserNotifications возвращает уведомления пользователя, свежие сверху
func (d *Database) GetUserNotifications(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead помечает уведомление прочитанным. Поиск идет по паре
// (id, user_id) — чужое уведомление выглядит как несуществующее. Повторный
// вызов безвреден: unread -> read и дальше read.
func (d *Database) MarkNotificationRead(userID, notificationID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := d.db.First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if notification.Status == models.NotificationStatusRead {
		return &notification, nil
	}

	notification.Status = models.NotificationStatusRead
	if err := d.db.Model(&notification).Update("status", models.NotificationStatusRead).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

func (d *Database) DeleteNotification(userID, notificationID uuid.UUID) error {
	result := d.db.Delete(&models.Notification{}, "id = ? AND user_id = ?", notificationID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
