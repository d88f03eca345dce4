package service

import (
	"context"
	"errors"
	"strings"

	"github.com/theandrewmo/warbler/internal/models"
	"github.com/theandrewmo/warbler/internal/observability"
	"github.com/theandrewmo/warbler/internal/repository"
	"github.com/theandrewmo/warbler/internal/validation"
)

// MessageService owns warble creation, deletion, listing and likes.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Create posts a new warble for the user.
func (s *MessageService) Create(ctx context.Context, userID uint, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if err := validation.ValidateMessageText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.Message{
		Text:   text,
		UserID: userID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	observability.MessagesTotal.WithLabelValues("create").Inc()
	return message, nil
}

// Get returns a single warble with its author and like count.
func (s *MessageService) Get(ctx context.Context, messageID uint, viewerID uint) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.LikeCount, err = s.messageRepo.LikeCount(ctx, messageID); err != nil {
		return nil, err
	}
	if viewerID != 0 {
		if message.Liked, err = s.messageRepo.IsLiked(ctx, viewerID, messageID); err != nil {
			return nil, err
		}
	}
	return message, nil
}

// Delete removes a warble. Only its owner may delete it.
func (s *MessageService) Delete(ctx context.Context, messageID, requesterID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID != requesterID {
		return models.NewAuthorizationError("You can only delete your own messages")
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	observability.MessagesTotal.WithLabelValues("delete").Inc()
	return nil
}

// ListByUser returns a user's warbles, most recent first.
func (s *MessageService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByUser(ctx, userID, limit, offset)
}

// Feed returns the home timeline for a user.
func (s *MessageService) Feed(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.Feed(ctx, userID, limit, offset)
}

// Like adds a like edge. Liking your own warble is rejected; a duplicate
// like surfaces as DuplicateEdgeError.
func (s *MessageService) Like(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID == userID {
		return models.NewValidationError("Cannot like your own message")
	}

	if err := s.messageRepo.CreateLike(ctx, userID, messageID); err != nil {
		if errors.Is(err, repository.ErrEdgeExists) {
			return models.NewDuplicateEdgeError("You already liked this message")
		}
		return err
	}
	return nil
}

// Unlike removes the like if present; removing an absent like is a no-op.
func (s *MessageService) Unlike(ctx context.Context, userID, messageID uint) error {
	return s.messageRepo.DeleteLike(ctx, userID, messageID)
}

// LikedBy returns the warbles a user has liked, most recently liked first.
func (s *MessageService) LikedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.LikedBy(ctx, userID, limit, offset)
}
