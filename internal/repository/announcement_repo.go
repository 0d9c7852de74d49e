package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"forum-api/internal/database"
	"forum-api/internal/model"
)

type AnnouncementRepository struct {
	collection
}

func NewAnnouncementRepository(db *mongo.Database, timeout time.Duration) *AnnouncementRepository {
	return &AnnouncementRepository{collection: newCollection(db, database.CollectionAnnouncements, timeout)}
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, upstream("list announcements", err)
	}

	items := make([]model.Announcement, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, upstream("decode announcements", err)
	}
	return items, nil
}

func (r *AnnouncementRepository) Insert(ctx context.Context, a model.Announcement) (primitive.ObjectID, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	a.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, upstream("insert announcement", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *AnnouncementRepository) EstimatedCount(ctx context.Context) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	count, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, upstream("count announcements", err)
	}
	return count, nil
}
