package usecase

import (
	"context"
	"strings"

	"main/dto"
	"main/model"
	"main/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoteStore is the slice of the notes repository the service needs.
type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	FindNotes(ctx context.Context, q repository.NoteQuery) ([]*model.Note, int64, error)
	SearchNotes(ctx context.Context, userID primitive.ObjectID, query string, skip, limit int64) ([]*model.Note, int64, error)
	GetNote(ctx context.Context, id, userID primitive.ObjectID) (*model.Note, error)
	UpdateNote(ctx context.Context, id, userID primitive.ObjectID, set bson.M) (*model.Note, error)
	DeleteNote(ctx context.Context, id, userID primitive.ObjectID) error
	SetFavorited(ctx context.Context, id, userID primitive.ObjectID, favorited bool) (*model.Note, error)
}

type NotesService struct {
	NotesRepo NoteStore
}

// NoteListOptions carries the raw listing query parameters. String
// fields hold the unparsed query values; empty means absent.
type NoteListOptions struct {
	Tags      string // comma-separated, any-of match
	Language  string
	IsSnippet string // "true" means true, anything else false
	Favorited string
	Search    string
	Sort      string
	Order     string
	Page      int
	Limit     int
}

// Sort fields the listing accepts; anything else falls back to
// creation date.
var allowedSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

// ListNotes composes the conjunctive filter set, validates the sort,
// and returns one page plus the total match count.
func (svc *NotesService) ListNotes(ctx context.Context, userID primitive.ObjectID, opts NoteListOptions) ([]*model.Note, int64, error) {
	page, limit := normalizePage(opts.Page, opts.Limit)

	query := repository.NoteQuery{
		UserID:    userID,
		Language:  strings.ToLower(strings.TrimSpace(opts.Language)),
		Search:    opts.Search,
		SortField: "created_at",
		SortAsc:   opts.Order == "asc",
		Skip:      int64(page-1) * int64(limit),
		Limit:     int64(limit),
	}

	if field, ok := allowedSortFields[opts.Sort]; ok {
		query.SortField = field
	}

	if opts.Tags != "" {
		for _, tag := range strings.Split(opts.Tags, ",") {
			if trimmed := strings.ToLower(strings.TrimSpace(tag)); trimmed != "" {
				query.Tags = append(query.Tags, trimmed)
			}
		}
	}
	if opts.IsSnippet != "" {
		isSnippet := opts.IsSnippet == "true"
		query.IsSnippet = &isSnippet
	}
	if opts.Favorited != "" {
		favorited := opts.Favorited == "true"
		query.Favorited = &favorited
	}

	return svc.NotesRepo.FindNotes(ctx, query)
}

// SearchNotes ranks by the store's relevance score. The caller
// guarantees a non-empty query.
func (svc *NotesService) SearchNotes(ctx context.Context, userID primitive.ObjectID, query string, page, limit int) ([]*model.Note, int64, error) {
	page, limit = normalizePage(page, limit)
	skip := int64(page-1) * int64(limit)
	return svc.NotesRepo.SearchNotes(ctx, userID, query, skip, int64(limit))
}

func (svc *NotesService) GetNote(ctx context.Context, id, userID primitive.ObjectID) (*model.Note, error) {
	return svc.NotesRepo.GetNote(ctx, id, userID)
}

func (svc *NotesService) CreateNote(ctx context.Context, req *dto.CreateNoteRequest, userID primitive.ObjectID) (*model.Note, error) {
	note := req.ToNote(userID)
	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote builds a partial $set from the fields the payload
// actually carried. Timestamps are stamped by the repository.
func (svc *NotesService) UpdateNote(ctx context.Context, id, userID primitive.ObjectID, req *dto.UpdateNoteRequest) (*model.Note, error) {
	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Language != nil {
		language := *req.Language
		if language == "" {
			language = "text"
		}
		set["language"] = language
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	if req.IsPublic != nil {
		set["is_public"] = *req.IsPublic
	}
	if req.IsSnippet != nil {
		set["is_snippet"] = *req.IsSnippet
	}
	if req.Favorited != nil {
		set["favorited"] = *req.Favorited
	}

	return svc.NotesRepo.UpdateNote(ctx, id, userID, set)
}

func (svc *NotesService) DeleteNote(ctx context.Context, id, userID primitive.ObjectID) error {
	return svc.NotesRepo.DeleteNote(ctx, id, userID)
}

// ToggleFavorite reads the owner-scoped note, flips the flag and
// persists it.
func (svc *NotesService) ToggleFavorite(ctx context.Context, id, userID primitive.ObjectID) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return svc.NotesRepo.SetFavorited(ctx, id, userID, !note.Favorited)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
