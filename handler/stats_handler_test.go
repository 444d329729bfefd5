package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"main/middleware"
	"main/model"
	"main/usecase"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixedStatsStore struct {
	counts   map[string]int64
	tags     []model.TagCount
	tagLimit int64
}

func (s *fixedStatsStore) CountNotes(_ context.Context, _ primitive.ObjectID, extra bson.M) (int64, error) {
	if extra == nil {
		return s.counts["total"], nil
	}
	for key := range extra {
		return s.counts[key], nil
	}
	return 0, nil
}

func (s *fixedStatsStore) CountCreatedSince(_ context.Context, _ primitive.ObjectID, _ time.Time) (int64, error) {
	return s.counts["recent"], nil
}

func (s *fixedStatsStore) LanguageStats(_ context.Context, _ primitive.ObjectID, _ int64) ([]model.LanguageCount, error) {
	return []model.LanguageCount{{Language: "go", Count: 4}}, nil
}

func (s *fixedStatsStore) TagStats(_ context.Context, _ primitive.ObjectID, limit int64) ([]model.TagCount, error) {
	s.tagLimit = limit
	return s.tags, nil
}

func newStatsRouter(store usecase.StatsStore, user *model.User) *gin.Engine {
	h := NewStatsHandler(&usecase.StatsService{NotesRepo: store})

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	stats := router.Group("/api/stats", setUser(user))
	stats.GET("", h.GetStats)
	stats.GET("/tags", h.GetTagStats)
	return router
}

func TestGetStats(t *testing.T) {
	store := &fixedStatsStore{counts: map[string]int64{
		"total":      10,
		"is_snippet": 7,
		"favorited":  2,
		"is_public":  3,
		"recent":     4,
	}}
	router := newStatsRouter(store, testUser())

	w := doJSON(router, "GET", "/api/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	if data["totalNotes"] != float64(10) || data["totalSnippets"] != float64(7) {
		t.Errorf("unexpected counters %v", data)
	}
	if data["privateNotes"] != float64(7) {
		t.Errorf("private must be total minus public, got %v", data["privateNotes"])
	}
	languages := data["topLanguages"].([]interface{})
	if len(languages) != 1 {
		t.Fatalf("unexpected languages %v", languages)
	}
	lang := languages[0].(map[string]interface{})
	if lang["language"] != "go" || lang["count"] != float64(4) {
		t.Errorf("unexpected language entry %v", lang)
	}
}

func TestGetTagStatsLimit(t *testing.T) {
	store := &fixedStatsStore{
		counts: map[string]int64{},
		tags:   []model.TagCount{{Tag: "go", Count: 3}},
	}
	router := newStatsRouter(store, testUser())

	w := doJSON(router, "GET", "/api/stats/tags", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if store.tagLimit != 20 {
		t.Errorf("expected default limit 20, got %d", store.tagLimit)
	}

	doJSON(router, "GET", "/api/stats/tags?limit=5", nil)
	if store.tagLimit != 5 {
		t.Errorf("expected explicit limit 5, got %d", store.tagLimit)
	}

	data := decodeEnvelope(t, w)["data"].([]interface{})
	entry := data[0].(map[string]interface{})
	if entry["tag"] != "go" || entry["count"] != float64(3) {
		t.Errorf("unexpected tag entry %v", entry)
	}
}
