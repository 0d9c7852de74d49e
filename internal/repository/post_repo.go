package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"forum-api/internal/database"
	"forum-api/internal/model"
	"forum-api/internal/query"
)

type PostRepository struct {
	collection
}

func NewPostRepository(db *mongo.Database, timeout time.Duration) *PostRepository {
	return &PostRepository{collection: newCollection(db, database.CollectionPosts, timeout)}
}

func (r *PostRepository) Find(ctx context.Context, q query.Query) ([]model.Post, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := r.coll.Find(ctx, filter, q.FindOptions())
	if err != nil {
		return nil, upstream("find posts", err)
	}

	posts := make([]model.Post, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, upstream("decode posts", err)
	}
	return posts, nil
}

// FindOne returns nil without error when nothing matches.
func (r *PostRepository) FindOne(ctx context.Context, filter bson.M) (*model.Post, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var p model.Post
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		return nil, upstream("find post", err)
	}
	return &p, nil
}

func (r *PostRepository) Insert(ctx context.Context, p model.Post) (primitive.ObjectID, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	p.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, upstream("insert post", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *PostRepository) Delete(ctx context.Context, filter bson.M) (model.DeleteResult, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return model.DeleteResult{}, upstream("delete post", err)
	}
	return model.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// EstimatedCount reads collection metadata instead of scanning documents.
func (r *PostRepository) EstimatedCount(ctx context.Context) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	count, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, upstream("count posts", err)
	}
	return count, nil
}
