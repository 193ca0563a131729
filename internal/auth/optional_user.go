package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DemoInspector is used when no identity is supplied.
const DemoInspector = "demo-inspector"

// OptionalUser sets an inspector id in context without enforcing auth.
// - If X-User-Id is missing, it falls back to DemoInspector.
// - Use this ONLY for development/testing.
func OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = DemoInspector
		}
		c.Set(CtxFirebaseUID, uid)
		c.Next()
	}
}
