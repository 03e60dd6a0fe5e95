package service

import (
	"context"

	"gorm.io/gorm"

	apperrors "covoiturage/internal/errors"
	"covoiturage/internal/model"
	"covoiturage/internal/repository"
)

// MessageService exposes message domain operations.
type MessageService interface {
	GetMessage(ctx context.Context, id uint) (*model.Message, error)
	ListMessages(ctx context.Context) ([]model.Message, error)
	ListBySender(ctx context.Context, senderID uint) ([]model.Message, error)
	ListByRecipient(ctx context.Context, recipientID uint) ([]model.Message, error)
	CreateMessage(ctx context.Context, message *model.Message) (*model.Message, error)
	DeleteMessage(ctx context.Context, id uint) error
}

type messageService struct {
	messages repository.MessageRepository
}

// NewMessageService builds a MessageService.
func NewMessageService(messages repository.MessageRepository) MessageService {
	return &messageService{messages: messages}
}

func (s *messageService) GetMessage(ctx context.Context, id uint) (*model.Message, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return message, nil
}

func (s *messageService) ListMessages(ctx context.Context) ([]model.Message, error) {
	return s.messages.List(ctx)
}

func (s *messageService) ListBySender(ctx context.Context, senderID uint) ([]model.Message, error) {
	messages, err := s.messages.ListBySender(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return messages, nil
}

func (s *messageService) ListByRecipient(ctx context.Context, recipientID uint) ([]model.Message, error) {
	messages, err := s.messages.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return messages, nil
}

func (s *messageService) CreateMessage(ctx context.Context, message *model.Message) (*model.Message, error) {
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, id uint) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}
