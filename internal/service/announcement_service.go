package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-api/internal/model"
	"forum-api/pkg/apierror"
)

type AnnouncementStore interface {
	List(ctx context.Context) ([]model.Announcement, error)
	Insert(ctx context.Context, a model.Announcement) (primitive.ObjectID, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

type AnnouncementService struct {
	announcements AnnouncementStore
	now           func() time.Time
}

func NewAnnouncementService(announcements AnnouncementStore) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, now: time.Now}
}

func (s *AnnouncementService) List(ctx context.Context) ([]model.Announcement, error) {
	return s.announcements.List(ctx)
}

func (s *AnnouncementService) Count(ctx context.Context) (int64, error) {
	return s.announcements.EstimatedCount(ctx)
}

func (s *AnnouncementService) Create(ctx context.Context, a model.Announcement) (model.InsertResult, error) {
	if strings.TrimSpace(a.Title) == "" {
		return model.InsertResult{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "title is required", "title", http.StatusBadRequest)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}

	a.ID = primitive.NilObjectID
	id, err := s.announcements.Insert(ctx, a)
	if err != nil {
		return model.InsertResult{}, err
	}
	return model.Inserted(id), nil
}
