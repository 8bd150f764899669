package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suryaansh001/shayari-backend/internal/access"
	"github.com/suryaansh001/shayari-backend/internal/apperrors"
)

// IdentityKey is the gin context key holding the caller's access.Identity.
const IdentityKey = "identity"

// TokenVerifier is the minimal interface the middleware depends on.
type TokenVerifier interface {
	Verify(raw string) (identity string, ok bool)
}

// BearerToken extracts the token from an Authorization header. present is
// false when the header is missing or carries an empty bearer token; any
// other non-empty header counts as a presented credential.
func BearerToken(header string) (token string, present bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return header, true
	}
	if !found {
		return "", false
	}
	token = strings.TrimSpace(rest)
	return token, token != ""
}

// Authenticate resolves the caller's identity and stores it on the context.
// It never rejects a request; handlers decide through the access policy.
func Authenticate(ver TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(IdentityKey, resolve(ver, c.GetHeader("Authorization")))
		c.Next()
	}
}

func resolve(ver TokenVerifier, header string) access.Identity {
	raw, present := BearerToken(header)
	if !present {
		return access.AnonymousIdentity()
	}
	if sub, ok := ver.Verify(raw); ok {
		return access.AuthenticatedAs(sub)
	}
	return access.InvalidIdentity()
}

// IdentityFrom returns the identity stored by Authenticate, or an anonymous
// identity when the middleware did not run.
func IdentityFrom(c *gin.Context) access.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.AnonymousIdentity()
}

// RequireAuth aborts unauthenticated callers with the policy's denial:
// 401 when no token was sent and 403 when the token did not verify.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id.IsAuthenticated() {
			c.Next()
			return
		}
		ae := apperrors.From(access.DenialError(id))
		c.AbortWithStatusJSON(ae.HTTPStatus(), gin.H{"message": ae.Message})
	}
}

// rateKey prefers the authenticated subject, falling back to client IP.
func rateKey(c *gin.Context) string {
	if id := IdentityFrom(c); id.IsAuthenticated() {
		return "sub:" + id.Subject
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
