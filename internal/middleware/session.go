package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ClientIDHeader carries the client session key of non-browser clients.
	ClientIDHeader = "X-Client-ID"
	// ClientCookie carries the client session key of browsers.
	ClientCookie = "sofregit_client"

	clientIDKey  = "client_id"
	cookieMaxAge = 365 * 24 * 60 * 60
)

// ClientSession makes sure every request carries a client session key,
// issuing a new one as a cookie when the client sent none.
func ClientSession(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetHeader(ClientIDHeader)
		if clientID == "" {
			if cookie, err := c.Cookie(ClientCookie); err == nil {
				clientID = cookie
			}
		}
		if clientID == "" {
			clientID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, clientID, cookieMaxAge, "/", "", secureCookie, true)
		}

		c.Set(clientIDKey, clientID)
		c.Header(ClientIDHeader, clientID)
		c.Next()
	}
}

// ClientID returns the client session key of the request.
func ClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
