package notification

import (
	"context"
	"errors"
	"net/http"
	"time"

	"staffops/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = apperror.New(apperror.CodeNotFound, "notification not found", http.StatusNotFound)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	ListForRecipient(ctx context.Context, profileID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, profileID string) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error) {
	recipient, err := uuid.Parse(req.RecipientProfileID)
	if err != nil {
		return NotificationResponse{}, apperror.InvalidField("recipient_profile_id")
	}

	n := &Notification{
		ID:                 uuid.New(),
		RecipientProfileID: recipient,
		Title:              req.Title,
		Message:            req.Message,
		Type:               req.Type,
		ActionType:         req.ActionType,
		Priority:           req.Priority,
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	if req.RelatedID != nil {
		related, err := uuid.Parse(*req.RelatedID)
		if err != nil {
			return NotificationResponse{}, apperror.InvalidField("related_id")
		}
		n.RelatedID = &related
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return NotificationResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) ListForRecipient(ctx context.Context, profileID string, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindByRecipient(ctx, profileID, unreadOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, profileID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, profileID)
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:                 n.ID.String(),
		RecipientProfileID: n.RecipientProfileID.String(),
		Title:              n.Title,
		Message:            n.Message,
		Type:               n.Type,
		ActionType:         n.ActionType,
		Priority:           n.Priority,
		IsRead:             n.IsRead,
		CreatedAt:          n.CreatedAt.Format(time.RFC3339),
	}
	if n.RelatedID != nil {
		v := n.RelatedID.String()
		resp.RelatedID = &v
	}
	return resp
}
