package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Language  string             `bson:"language" json:"language"`
	Tags      []string           `bson:"tags" json:"tags"`
	IsPublic  bool               `bson:"is_public" json:"isPublic"`
	IsSnippet bool               `bson:"is_snippet" json:"isSnippet"`
	Favorited bool               `bson:"favorited" json:"favorited"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
	Score     float64            `bson:"score,omitempty" json:"score,omitempty"`
}
