package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GatewayAuth trusts caller identity from gateway headers (X-User-ID, X-API-Key-ID).
// The gateway validates credentials and billing before the request reaches this API.
//
// When AUTH_MODE=gateway, the API trusts these headers unconditionally.
// This should ONLY be used behind a gateway with proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.GetHeader("X-User-ID")
		if callerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			return
		}

		c.Set("caller_id", callerID)
		if apiKeyID := c.GetHeader("X-API-Key-ID"); apiKeyID != "" {
			c.Set("api_key_id", apiKeyID)
		}

		c.Next()
	}
}

// GetCallerID retrieves the caller set by the auth middleware
func GetCallerID(c *gin.Context) (string, bool) {
	id := c.GetString("caller_id")
	return id, id != ""
}
