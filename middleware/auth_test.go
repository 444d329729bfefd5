package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUserFinder struct {
	users map[string]*model.User
	err   error
}

func (s *stubUserFinder) FindByAPIKey(_ context.Context, apiKey string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if user, ok := s.users[apiKey]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func newAuthRouter(finder UserFinder) *gin.Engine {
	router := gin.New()
	router.GET("/whoami", RequireAPIKey(finder), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no user in context")
			return
		}
		utils.Success(c, gin.H{"username": user.Username})
	})
	return router
}

func TestRequireAPIKeyMissingHeader(t *testing.T) {
	router := newAuthRouter(&stubUserFinder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var body utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Success {
		t.Error("expected success=false")
	}
	if body.Message != "API key is required. Provide it in x-api-key header" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestRequireAPIKeyInvalidKey(t *testing.T) {
	router := newAuthRouter(&stubUserFinder{users: map[string]*model.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(APIKeyHeader, "napi_deadbeef")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var body utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Message != "Invalid API key" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestRequireAPIKeySuccess(t *testing.T) {
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		APIKey:   "napi_valid",
	}
	router := newAuthRouter(&stubUserFinder{users: map[string]*model.User{
		"napi_valid": user,
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(APIKeyHeader, "napi_valid")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body.Success || body.Data.Username != "alice" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestOptionalAPIKeyNeverFails(t *testing.T) {
	router := gin.New()
	router.GET("/open", OptionalAPIKey(&stubUserFinder{}), func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.String(http.StatusOK, "authenticated")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set(APIKeyHeader, "napi_unknown")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite unknown key, got %d", w.Code)
	}
	if w.Body.String() != "anonymous" {
		t.Errorf("expected anonymous, got %q", w.Body.String())
	}
}
