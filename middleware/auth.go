package middleware

import (
	"context"
	"log"
	"os"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const (
	// APIKeyHeader carries the credential on every authenticated call
	APIKeyHeader = "x-api-key"

	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// UserFinder resolves a credential to its owner.
type UserFinder interface {
	FindByAPIKey(ctx context.Context, apiKey string) (*model.User, error)
}

// RequireAPIKey authenticates the request from the x-api-key header.
// The credential is always resolved against the store; the format check
// in utils is never a substitute for the lookup.
func RequireAPIKey(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey == "" {
			utils.TrackAuthAttempt("missing")
			utils.Unauthorized(c, "API key is required. Provide it in x-api-key header")
			c.Abort()
			return
		}

		user, err := users.FindByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			if err == repository.ErrUserNotFound {
				utils.TrackAuthAttempt("invalid")
				utils.Unauthorized(c, "Invalid API key")
				c.Abort()
				return
			}

			utils.TrackAuthAttempt("error")
			log.Printf("API key lookup failed: %v", err)
			message := "Authentication error"
			if os.Getenv("GO_ENV") == "development" {
				message = "Authentication error: " + err.Error()
			}
			utils.InternalError(c, message)
			c.Abort()
			return
		}

		utils.TrackAuthAttempt("success")
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID.Hex())
		c.Next()
	}
}

// OptionalAPIKey attaches the user when a valid key is present but
// never fails the request. Kept as a capability for public-read
// endpoints; not mounted on any route today.
func OptionalAPIKey(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey != "" {
			if user, err := users.FindByAPIKey(c.Request.Context(), apiKey); err == nil {
				c.Set(ContextUserKey, user)
				c.Set(ContextUserIDKey, user.ID.Hex())
			}
		}
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the request context.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
