// README: Panic recovery middleware; the backstop for unexpected failures.
package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery converts an escaped panic into a 500 with an apologetic message.
// The pipeline stages all recover locally, so reaching this means something
// genuinely unexpected happened; the panic value is logged for diagnosis.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Sorry, something went wrong while planning your trip. Please try again.",
				})
			}
		}()
		c.Next()
	}
}
