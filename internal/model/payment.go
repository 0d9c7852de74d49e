package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	Price         float64            `bson:"price" json:"price"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	Date          time.Time          `bson:"date" json:"date"`
}

type PaymentIntentRequest struct {
	SubscriptionFee float64 `json:"subscription_fee"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
