package repository

import (
	"context"

	"gorm.io/gorm"

	"covoiturage/internal/model"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uint) (*model.Message, error)
	List(ctx context.Context) ([]model.Message, error)
	ListBySender(ctx context.Context, senderID uint) ([]model.Message, error)
	ListByRecipient(ctx context.Context, recipientID uint) ([]model.Message, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository builds a GORM-backed repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) List(ctx context.Context) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) ListBySender(ctx context.Context, senderID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).Where("envoyeur = ?", senderID).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) ListByRecipient(ctx context.Context, recipientID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).Where("receveur = ?", recipientID).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
