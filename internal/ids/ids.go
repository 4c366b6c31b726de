// Package ids generates request identifiers.
package ids

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// HeaderRequestID carries the request identifier in both directions.
const HeaderRequestID = "X-Request-ID"

// ContextKeyRequestID is the gin context key holding the request identifier.
const ContextKeyRequestID = "request_id"

const maxIncomingIDLength = 128

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lexicographically sortable identifier.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// RequestID tags every request with an identifier. A well-formed incoming
// X-Request-ID is kept, otherwise a new one is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !validIncomingID(id) {
			id = New()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// FromContext returns the request identifier set by RequestID.
func FromContext(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

func validIncomingID(id string) bool {
	if id == "" || len(id) > maxIncomingIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
