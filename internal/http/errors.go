package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/orgauth/internal/auth"
)

type failure struct {
	httpStatus int
	status     string
	message    string
}

// serviceFailures maps domain errors to responses. Order matters: the first
// match wins.
var serviceFailures = []struct {
	err error
	failure
}{
	{auth.ErrDuplicateEmail, failure{http.StatusBadRequest, "Bad request", "Registration unsuccessful"}},
	{auth.ErrInvalidCredentials, failure{http.StatusUnauthorized, "Bad request", "Authentication failed"}},
	{auth.ErrUnauthenticated, failure{http.StatusUnauthorized, "error", "Authentication required"}},
	{auth.ErrForbidden, failure{http.StatusForbidden, "forbidden", "You are not authorized to view this user"}},
	{auth.ErrNotMember, failure{http.StatusUnauthorized, "error", "User does not belong to organisation"}},
	{auth.ErrDuplicateMembership, failure{http.StatusBadRequest, "error", "User already exists in organisation"}},
	{auth.ErrNotFound, failure{http.StatusNotFound, "Not found", "Resource not found"}},
}

// respondServiceError writes the response for an error returned by the
// auth service. Validation sentinels become 422, unknown errors 500.
func respondServiceError(c *gin.Context, err error, context string) {
	if field, ok := validationField(err); ok {
		respondValidation(c, []FieldError{{Field: field, Message: err.Error()}})
		return
	}
	for _, sf := range serviceFailures {
		if errors.Is(err, sf.err) {
			respondFailure(c, sf.httpStatus, sf.status, sf.message)
			return
		}
	}
	respondInternalError(c, err, context)
}
