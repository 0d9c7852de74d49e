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

type UserRepository struct {
	collection
}

func NewUserRepository(db *mongo.Database, timeout time.Duration) *UserRepository {
	return &UserRepository{collection: newCollection(db, database.CollectionUsers, timeout)}
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, upstream("list users", err)
	}

	users := make([]model.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, upstream("decode users", err)
	}
	return users, nil
}

// FindByEmail returns nil without error when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		return nil, upstream("find user by email", err)
	}
	return &u, nil
}

// Insert reports ErrUserExists when the unique email index rejects the document.
func (r *UserRepository) Insert(ctx context.Context, u model.User) (primitive.ObjectID, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	u.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrUserExists
	}
	if err != nil {
		return primitive.NilObjectID, upstream("insert user", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role string) (model.UpdateResult, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}}, options.Update())
	if err != nil {
		return model.UpdateResult{}, upstream("set user role", err)
	}

	return model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}
