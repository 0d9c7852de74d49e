package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// InsertResult mirrors the store's insert acknowledgement. A nil InsertedID
// together with Message reports an insert that was skipped.
type InsertResult struct {
	Acknowledged bool                `json:"acknowledged,omitempty"`
	InsertedID   *primitive.ObjectID `json:"insertedId"`
	Message      string              `json:"message,omitempty"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func Inserted(id primitive.ObjectID) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: &id}
}
