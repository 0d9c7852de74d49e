package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-api/internal/model"
	"forum-api/internal/query"
	"forum-api/pkg/apierror"
)

type PostStore interface {
	Find(ctx context.Context, q query.Query) ([]model.Post, error)
	FindOne(ctx context.Context, filter bson.M) (*model.Post, error)
	Insert(ctx context.Context, p model.Post) (primitive.ObjectID, error)
	Delete(ctx context.Context, filter bson.M) (model.DeleteResult, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

type PostService struct {
	posts PostStore
	audit *AuditService
	now   func() time.Time
}

func NewPostService(posts PostStore, audit *AuditService) *PostService {
	return &PostService{posts: posts, audit: audit, now: time.Now}
}

func (s *PostService) ListAll(ctx context.Context) ([]model.Post, error) {
	return s.posts.Find(ctx, query.All())
}

func (s *PostService) ListByEmail(ctx context.Context, email string) ([]model.Post, error) {
	return s.posts.Find(ctx, query.ByEmail(email))
}

func (s *PostService) ListByTag(ctx context.Context, tag string) ([]model.Post, error) {
	return s.posts.Find(ctx, query.ByTag(tag))
}

// ListPage runs a sorted, windowed listing built from lq.
func (s *PostService) ListPage(ctx context.Context, lq query.ListQuery) ([]model.Post, error) {
	q, err := query.BuildListQuery(lq)
	if err != nil {
		return nil, err
	}
	return s.posts.Find(ctx, q)
}

// GetByID returns nil when no post has the id.
func (s *PostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	filter, err := query.ByID(id)
	if err != nil {
		return nil, err
	}
	return s.posts.FindOne(ctx, filter)
}

func (s *PostService) Count(ctx context.Context) (int64, error) {
	return s.posts.EstimatedCount(ctx)
}

func (s *PostService) Create(ctx context.Context, p model.Post) (model.InsertResult, error) {
	p.Email = strings.TrimSpace(p.Email)
	if p.Email == "" {
		return model.InsertResult{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "email is required", "email", http.StatusBadRequest)
	}
	if tag := strings.TrimSpace(p.Tag); tag != "" {
		p.Tag = query.NormalizeTag(tag)
	}
	if p.PostTime.IsZero() {
		p.PostTime = s.now().UTC()
	}

	p.ID = primitive.NilObjectID
	id, err := s.posts.Insert(ctx, p)
	if err != nil {
		return model.InsertResult{}, err
	}
	return model.Inserted(id), nil
}

func (s *PostService) Delete(ctx context.Context, email string, id string, actor model.AuditActor) (model.DeleteResult, error) {
	filter, err := query.ByEmailAndID(email, id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	result, err := s.posts.Delete(ctx, filter)
	s.audit.Log(ctx, model.AuditActionPostDelete, actor, id, map[string]any{"email": email, "deleted": result.DeletedCount}, err)
	if err != nil {
		return model.DeleteResult{}, err
	}
	return result, nil
}
