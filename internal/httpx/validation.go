// Package httpx holds small helpers shared by the HTTP handlers.
package httpx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Report builds a per-field error body: {"errors": {"title": ["..."]}}.
func Report(field string, msgs ...string) gin.H {
	return gin.H{"errors": gin.H{field: msgs}}
}

// BindingReport converts a gin binding error into the same per-field shape.
func BindingReport(err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := map[string][]string{}
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			fields[name] = append(fields[name], message(fe))
		}
		return gin.H{"errors": fields}
	}
	return gin.H{"errors": gin.H{"body": []string{err.Error()}}}
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
