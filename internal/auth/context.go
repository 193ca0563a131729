package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// InspectorID returns the authenticated inspector for the request. It is
// set by FirebaseAuthMiddleware or OptionalUser.
func InspectorID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
