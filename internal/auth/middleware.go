package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/orgauth/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUser   = "auth_user"
	ContextKeyUserID = "auth_user_id"
)

// Resolver turns a bearer token into a principal.
type Resolver interface {
	Resolve(ctx context.Context, bearer string) (*entities.User, error)
}

// AuthOutcomeRecorder observes the result of each bearer resolution.
type AuthOutcomeRecorder interface {
	ObserveAuth(outcome string)
}

// Middleware binds bearer tokens on incoming requests to principals.
type Middleware struct {
	resolver Resolver
	recorder AuthOutcomeRecorder
}

// NewMiddleware creates a new authentication middleware. recorder may be nil.
func NewMiddleware(resolver Resolver, recorder AuthOutcomeRecorder) *Middleware {
	return &Middleware{
		resolver: resolver,
		recorder: recorder,
	}
}

// RequireAuth rejects requests without a valid bearer token with 401.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			m.observe("missing")
			abortUnauthenticated(c)
			return
		}

		user, err := m.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrUnauthenticated) {
				log.Printf("Failed to resolve bearer token: %v", err)
				m.observe("error")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			m.observe("rejected")
			abortUnauthenticated(c)
			return
		}

		m.observe("accepted")
		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyUserID, user.UserID)
		c.Next()
	}
}

func (m *Middleware) observe(outcome string) {
	if m.recorder != nil {
		m.recorder.ObserveAuth(outcome)
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": "Could not validate credentials",
	})
}

// ExtractBearer returns the token from an "Authorization: Bearer <token>" header.
func ExtractBearer(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// CurrentUser retrieves the authenticated user from the context.
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok && user != nil {
			return user, true
		}
	}
	return nil, false
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns "" if the request is not authenticated.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}
