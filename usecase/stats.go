package usecase

import (
	"context"
	"time"

	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const topLanguagesLimit = 10

// StatsStore is the aggregation surface of the notes repository.
type StatsStore interface {
	CountNotes(ctx context.Context, userID primitive.ObjectID, extra bson.M) (int64, error)
	CountCreatedSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (int64, error)
	LanguageStats(ctx context.Context, userID primitive.ObjectID, limit int64) ([]model.LanguageCount, error)
	TagStats(ctx context.Context, userID primitive.ObjectID, limit int64) ([]model.TagCount, error)
}

type StatsService struct {
	NotesRepo StatsStore
}

// Summary gathers the per-user counters in parallel. All stats are
// scoped to one owner; no cross-user aggregation exists.
func (svc *StatsService) Summary(ctx context.Context, userID primitive.ObjectID) (*model.UserStats, error) {
	var (
		total, snippets, favorites, public, recent int64
		languages                                  []model.LanguageCount
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		total, err = svc.NotesRepo.CountNotes(gctx, userID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		snippets, err = svc.NotesRepo.CountNotes(gctx, userID, bson.M{"is_snippet": true})
		return err
	})
	g.Go(func() error {
		var err error
		favorites, err = svc.NotesRepo.CountNotes(gctx, userID, bson.M{"favorited": true})
		return err
	})
	g.Go(func() error {
		var err error
		public, err = svc.NotesRepo.CountNotes(gctx, userID, bson.M{"is_public": true})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = svc.NotesRepo.CountCreatedSince(gctx, userID, time.Now().AddDate(0, 0, -7))
		return err
	})
	g.Go(func() error {
		var err error
		languages, err = svc.NotesRepo.LanguageStats(gctx, userID, topLanguagesLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Notes persisted before the language default existed group under
	// an empty key; report them as the default.
	for i := range languages {
		if languages[i].Language == "" {
			languages[i].Language = "text"
		}
	}

	return &model.UserStats{
		TotalNotes:           int(total),
		TotalSnippets:        int(snippets),
		TotalFavorites:       int(favorites),
		PublicNotes:          int(public),
		PrivateNotes:         int(total - public),
		RecentNotesLast7Days: int(recent),
		TopLanguages:         languages,
	}, nil
}

// TagStats returns the most used tags, capped at limit (default 20).
func (svc *StatsService) TagStats(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.TagCount, error) {
	if limit < 1 {
		limit = 20
	}
	return svc.NotesRepo.TagStats(ctx, userID, int64(limit))
}
