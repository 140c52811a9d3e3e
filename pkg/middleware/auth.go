package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"go-grocery/pkg/auth"
	"go-grocery/pkg/errors"
)

// PrincipalKey is the gin context key holding the authenticated principal
const PrincipalKey = "principal"

// Authenticate parses the bearer token and stores the principal in the
// request context. Requests without a valid token are rejected.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, errors.NewUnauthorized("missing bearer token"))
			return
		}

		principal, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// Authorize checks the permission table for the given operation against the
// roles of the authenticated principal. Must run after Authenticate.
func Authorize(op auth.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			abortWithError(c, errors.NewUnauthorized("authentication required"))
			return
		}

		if !auth.Allowed(op, principal.Roles) {
			abortWithError(c, errors.NewForbidden("operation not permitted for your role"))
			return
		}

		c.Next()
	}
}

// GetPrincipal returns the authenticated principal, or nil if absent
func GetPrincipal(c *gin.Context) *auth.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}

func abortWithError(c *gin.Context, err error) {
	traceID := c.GetString(TraceIDKey)
	statusCode, jsonResponse := errors.ToJSON(err, traceID)
	c.Header(TraceIDHeader, traceID)
	c.Abort()
	c.Data(statusCode, "application/json", jsonResponse)
}
