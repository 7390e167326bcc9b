// README: CORS middleware (gin-contrib/cors) with a fixed origin list plus regex patterns.
package middleware

import (
	"net/http"
	"regexp"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows an origin when it is listed exactly or matches one of patterns.
func CORS(origins []string, patterns []*regexp.Regexp) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if slices.Contains(origins, origin) {
				return true
			}
			for _, p := range patterns {
				if p.MatchString(origin) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
