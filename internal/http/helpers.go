package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/entities"
	"github.com/mrlokans/orgauth/internal/ids"
)

// --- Response Types ---

// Envelope is the body of every API response except the OAuth2 token
// endpoint and validation failures.
type Envelope struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// AuthData is returned by register and login.
type AuthData struct {
	AccessToken string         `json:"accessToken"`
	User        *entities.User `json:"user"`
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Status: "success", Message: message, Data: data})
}

// --- Error Response Helpers ---

// respondFailure sends the error envelope; statusCode mirrors the HTTP status.
func respondFailure(c *gin.Context, httpStatus int, status, message string) {
	c.AbortWithStatusJSON(httpStatus, Envelope{Status: status, Message: message, StatusCode: httpStatus})
}

// respondInternalError logs err and sends a 500 without internals.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [request %s]: %v", context, ids.FromContext(c), err)
	respondFailure(c, http.StatusInternalServerError, "error", "Internal server error")
}

// currentUser returns the principal bound by auth.Middleware. Routes using it
// are always mounted behind RequireAuth, so a miss is a wiring bug.
func currentUser(c *gin.Context) (*entities.User, bool) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		respondFailure(c, http.StatusUnauthorized, "error", "Authentication required")
	}
	return user, ok
}
