package repository

import (
	"context"
	"time"

	"main/config"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	cfg := config.LoadDatabaseConfig()
	return &NotesRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection("notes"),
	}
}

// NoteQuery describes a scoped, filtered, paginated listing. UserID is
// mandatory: a note is never visible outside its owner's scope.
type NoteQuery struct {
	UserID    primitive.ObjectID
	Tags      []string // any-of match against the tag set
	Language  string
	IsSnippet *bool
	Favorited *bool
	Search    string // delegated to the text index
	SortField string // bson field name, validated by the caller
	SortAsc   bool
	Skip      int64
	Limit     int64
}

func (q NoteQuery) filter() bson.M {
	filter := bson.M{"user_id": q.UserID}
	if len(q.Tags) > 0 {
		filter["tags"] = bson.M{"$in": q.Tags}
	}
	if q.Language != "" {
		filter["language"] = q.Language
	}
	if q.IsSnippet != nil {
		filter["is_snippet"] = *q.IsSnippet
	}
	if q.Favorited != nil {
		filter["favorited"] = *q.Favorited
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}
	return filter
}

// CreateNote inserts a note and stamps both timestamps.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	result, err := r.MongoCollection.InsertOne(ctx, note)
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		note.ID = oid
	}
	return nil
}

// FindNotes runs a filtered, sorted, paginated listing and returns the
// total match count alongside the page.
func (r *NotesRepo) FindNotes(ctx context.Context, q NoteQuery) ([]*model.Note, int64, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	filter := q.filter()

	order := -1
	if q.SortAsc {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: order}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, 0, err
	}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

// SearchNotes ranks the user's notes by the text index relevance score.
func (r *NotesRepo) SearchNotes(ctx context.Context, userID primitive.ObjectID, query string, skip, limit int64) ([]*model.Note, int64, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id": userID,
		"$text":   bson.M{"$search": query},
	}

	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, 0, err
	}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

// GetNote retrieves one note scoped to its owner. An existing note
// owned by someone else surfaces as ErrNoteNotFound.
func (r *NotesRepo) GetNote(ctx context.Context, id, userID primitive.ObjectID) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// UpdateNote applies a partial $set scoped to id+owner and returns the
// updated document.
func (r *NotesRepo) UpdateNote(ctx context.Context, id, userID primitive.ObjectID, set bson.M) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	set["updated_at"] = time.Now()

	filter := bson.M{"_id": id, "user_id": userID}
	update := bson.M{"$set": set}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		utils.TrackError("database", "note_update_failed")
		return nil, err
	}

	utils.TrackNoteOperation("update")
	return &note, nil
}

// DeleteNote removes a note scoped to id+owner.
func (r *NotesRepo) DeleteNote(ctx context.Context, id, userID primitive.ObjectID) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("delete")
	return nil
}

// SetFavorited flips the favorite flag to the given value and returns
// the updated note.
func (r *NotesRepo) SetFavorited(ctx context.Context, id, userID primitive.ObjectID, favorited bool) (*model.Note, error) {
	return r.UpdateNote(ctx, id, userID, bson.M{"favorited": favorited})
}

// CountNotes counts the user's notes matching the extra criteria.
func (r *NotesRepo) CountNotes(ctx context.Context, userID primitive.ObjectID, extra bson.M) (int64, error) {
	timer := utils.TrackDBOperation("count", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	for k, v := range extra {
		filter[k] = v
	}

	return r.MongoCollection.CountDocuments(ctx, filter)
}

// CountCreatedSince counts notes created at or after the given time.
func (r *NotesRepo) CountCreatedSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (int64, error) {
	timer := utils.TrackDBOperation("count", "notes")
	defer timer.ObserveDuration()

	return r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	})
}

// LanguageStats groups the user's notes by language, most used first.
func (r *NotesRepo) LanguageStats(ctx context.Context, userID primitive.ObjectID, limit int64) ([]model.LanguageCount, error) {
	timer := utils.TrackDBOperation("aggregate", "notes")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$language", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []model.LanguageCount{}
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// TagStats flattens each note's tag set, groups by tag and counts.
func (r *NotesRepo) TagStats(ctx context.Context, userID primitive.ObjectID, limit int64) ([]model.TagCount, error) {
	timer := utils.TrackDBOperation("aggregate", "notes")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []model.TagCount{}
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
