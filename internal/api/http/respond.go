package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldDetail names one rejected request field.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details []FieldDetail `json:"details,omitempty"`
}

// Fail aborts the request with an error body.
func Fail(c *gin.Context, status int, msg string, details ...FieldDetail) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Details: details})
}

// BindingDetails turns a gin binding error into per-field details. Errors
// that did not come from the validator yield a single entry for the body.
func BindingDetails(err error) []FieldDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldDetail{{Field: "body", Message: err.Error()}}
	}
	out := make([]FieldDetail, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldDetail{Field: jsonName(fe.Field()), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// jsonName converts a Go field name such as FollowUpDate to follow_up_date.
func jsonName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
