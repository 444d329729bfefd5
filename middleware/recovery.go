package middleware

import (
	"log"
	"os"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware converts panics into the standard 500 envelope.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic recovered: %v", r)
				utils.TrackError("panic", "handler")

				message := "Internal server error"
				if os.Getenv("GO_ENV") == "development" {
					if err, ok := r.(error); ok {
						message = err.Error()
					}
				}
				utils.InternalError(c, message)
				c.Abort()
			}
		}()
		c.Next()
	}
}
