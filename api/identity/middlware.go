package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextOperatorClaims is the key used to store the operator claims in the Gin context.
	ContextOperatorClaims = "operatorClaims"

	// protocolHeader carries the token of websocket clients, which cannot set Authorization
	// from a browser.
	protocolHeader = "Sec-WebSocket-Protocol"
)

// Authoriz rejects requests without a valid operator token.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := ts.Decode(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextOperatorClaims, claims)
		c.Next()
	}
}

// bearer extracts the token from "Authorization: Bearer <token>" or, for websocket
// upgrades, from "Sec-WebSocket-Protocol: bearer, <token>".
func bearer(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	parts := strings.Split(c.GetHeader(protocolHeader), ",")
	if len(parts) == 2 && strings.TrimSpace(strings.ToLower(parts[0])) == "bearer" {
		token := strings.TrimSpace(parts[1])
		return token, token != ""
	}
	return "", false
}
