package middleware

import (
	"fmt"

	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidateObjectID rejects malformed 24-hex path parameters before any
// data-layer access happens.
func ValidateObjectID(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		if _, err := primitive.ObjectIDFromHex(raw); err != nil {
			utils.BadRequest(c, fmt.Sprintf("Invalid %s format", paramName))
			c.Abort()
			return
		}
		c.Next()
	}
}
