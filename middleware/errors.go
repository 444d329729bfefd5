package middleware

import (
	"errors"
	"log"
	"os"
	"strings"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Unique index names declared in repository.SetupIndexes, used to name
// the offending field on duplicate-key writes.
var uniqueIndexFields = map[string]string{
	"username_unique": "username",
	"email_unique":    "email",
	"api_key_unique":  "apiKey",
}

// ErrorHandler is the single funnel for data-layer failures. Handlers
// push errors with c.Error and return; this middleware maps them to the
// envelope after the chain unwinds. No partial response is ever sent
// for a failed operation.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		switch {
		case errors.Is(err, repository.ErrNoteNotFound):
			utils.NotFound(c, "Note not found")

		case errors.Is(err, repository.ErrUserNotFound):
			utils.NotFound(c, "User not found")

		case mongo.IsDuplicateKeyError(err):
			utils.TrackError("database", "duplicate_key")
			utils.BadRequest(c, duplicateKeyMessage(err))

		case errors.Is(err, primitive.ErrInvalidHex):
			utils.BadRequest(c, "Invalid ID format")

		default:
			utils.TrackError("internal", "unhandled")
			log.Printf("Unhandled error: %v", err)
			message := "Internal server error"
			if os.Getenv("GO_ENV") == "development" {
				message = err.Error()
			}
			utils.InternalError(c, message)
		}
	}
}

func duplicateKeyMessage(err error) string {
	text := err.Error()
	for index, field := range uniqueIndexFields {
		if strings.Contains(text, index) {
			return field + " already exists"
		}
	}
	return "Duplicate field value"
}
