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

type PaymentRepository struct {
	collection
}

func NewPaymentRepository(db *mongo.Database, timeout time.Duration) *PaymentRepository {
	return &PaymentRepository{collection: newCollection(db, database.CollectionPayments, timeout)}
}

func (r *PaymentRepository) FindByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, upstream("find payments", err)
	}

	payments := make([]model.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, upstream("decode payments", err)
	}
	return payments, nil
}

func (r *PaymentRepository) Insert(ctx context.Context, p model.Payment) (primitive.ObjectID, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	p.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, upstream("insert payment", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
