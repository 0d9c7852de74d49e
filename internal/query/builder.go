// Package query turns request parameters into document store filters,
// sort orders and skip/limit windows for post listings.
package query

import (
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"forum-api/internal/model"
	"forum-api/pkg/apierror"
)

const (
	SortField = "post_time"

	// The client's "desc" label sorts ascending in the store and every other
	// value sorts descending. Clients depend on this mapping as-is.
	SortWeightForDesc = 1
	SortWeightDefault = -1

	TagPrefix = "#"
)

type ListQuery struct {
	SortDirection string
	Page          int64
	Size          int64
	Email         string
	Tag           string
	ID            string
}

// Query is a store-neutral description of a find call.
type Query struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
}

func BuildListQuery(lq ListQuery) (Query, error) {
	filter := bson.M{}

	if email := strings.TrimSpace(lq.Email); email != "" {
		filter["email"] = email
	}
	if tag := strings.TrimSpace(lq.Tag); tag != "" {
		filter["tag"] = NormalizeTag(tag)
	}
	if id := strings.TrimSpace(lq.ID); id != "" {
		oid, err := ParseObjectID(id)
		if err != nil {
			return Query{}, err
		}
		filter["_id"] = oid
	}

	return Query{
		Filter: filter,
		Sort:   bson.D{{Key: SortField, Value: SortWeight(lq.SortDirection)}},
		Skip:   lq.Page * lq.Size,
		Limit:  lq.Size,
	}, nil
}

func SortWeight(direction string) int {
	if direction == "desc" {
		return SortWeightForDesc
	}
	return SortWeightDefault
}

// FindOptions converts the query window to driver options. A zero Limit
// means no limit, matching the store's own convention.
func (q Query) FindOptions() *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return opts
}

// All matches every document in insertion order.
func All() Query {
	return Query{Filter: bson.M{}}
}

func ByEmail(email string) Query {
	return Query{Filter: bson.M{"email": email}}
}

func ByTag(tag string) Query {
	return Query{Filter: bson.M{"tag": NormalizeTag(tag)}}
}

func ByID(id string) (bson.M, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid}, nil
}

func ByEmailAndID(email string, id string) (bson.M, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"email": email, "_id": oid}, nil
}

func NormalizeTag(tag string) string {
	if strings.HasPrefix(tag, TagPrefix) {
		return tag
	}
	return TagPrefix + tag
}

func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apierror.Wrap(
			model.ErrInvalidIdentifier,
			"BAD_REQUEST",
			"invalid identifier",
			fmt.Sprintf("%q is not a valid object id", id),
			http.StatusBadRequest,
		)
	}
	return oid, nil
}
