package middleware

import (
	"mime"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds the hardening headers every response carries.
func SecurityHeaders() gin.HandlerFunc {
	return secure.New(secure.Config{
		FrameDeny:               true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		BrowserXssFilter:        true,
		ContentSecurityPolicy:   "default-src 'self'; object-src 'none'",
		ReferrerPolicy:          "strict-origin-when-cross-origin",
	})
}

// CORS allows cross-origin requests from any origin.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:   []string{"Location", RequestIDHeader},
	})
}

// RequireContentType rejects the request with 415 unless its media type is
// exactly mediaType. Parameters such as charset are ignored.
func RequireContentType(mediaType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		parsed, _, err := mime.ParseMediaType(contentType)
		if contentType == "" || err != nil || parsed != mediaType {
			RespondWithError(c, http.StatusUnsupportedMediaType, "Content-Type must be "+mediaType)
			return
		}
		c.Next()
	}
}
