package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AuthorName  string             `bson:"author_name" json:"author_name"`
	AuthorImage string             `bson:"author_image,omitempty" json:"author_image,omitempty"`
	Email       string             `bson:"email" json:"email"`
	Title       string             `bson:"post_title" json:"post_title"`
	Description string             `bson:"post_description" json:"post_description"`
	Tag         string             `bson:"tag" json:"tag"`
	PostTime    time.Time          `bson:"post_time" json:"post_time"`
	UpVote      int                `bson:"upvote" json:"upvote"`
	DownVote    int                `bson:"downvote" json:"downvote"`
}

type Announcement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AuthorName  string             `bson:"author_name" json:"author_name"`
	AuthorImage string             `bson:"author_image,omitempty" json:"author_image,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
