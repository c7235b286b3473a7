package usecase

import (
	"context"
	"fmt"

	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	GetUserNotifications(ctx context.Context, userID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error)
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user ID %s", ErrInvalidInput, userID)
	}

	notifications, err := s.repo.Notification.FindByUserID(ctx, userUUID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Notification.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	notificationResponses := make([]response.NotificationResponse, len(notifications))
	for i, n := range notifications {
		notificationResponses[i] = response.NotificationToResponse(n)
	}

	return response.NewPaginatedResponse(notificationResponses, page.Page, page.PerPage, total), nil
}
