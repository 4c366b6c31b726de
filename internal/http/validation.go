package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/orgauth/internal/auth"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse is the 422 body.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

var registerFieldNames sync.Once

// useWireFieldNames makes validator report the json (or form) name of a
// field instead of the Go name.
func useWireFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindJSON decodes and validates the request body, answering 422 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	useWireFieldNames()
	return handleBindError(c, c.ShouldBindJSON(obj))
}

// bindForm decodes and validates form fields, answering 422 on failure.
func bindForm(c *gin.Context, obj any) bool {
	useWireFieldNames()
	return handleBindError(c, c.ShouldBindWith(obj, binding.Form))
}

func handleBindError(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		respondValidation(c, fields)
	case errors.As(err, &typeErr):
		respondValidation(c, []FieldError{{Field: typeErr.Field, Message: "invalid type, expected " + typeErr.Type.String()}})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		respondValidation(c, []FieldError{{Field: "body", Message: "request body must be valid JSON"}})
	default:
		respondValidation(c, []FieldError{{Field: "body", Message: err.Error()}})
	}
	return false
}

func respondValidation(c *gin.Context, fields []FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationResponse{Errors: fields})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// validationField reports which request field a service validation error
// belongs to.
func validationField(err error) (string, bool) {
	switch {
	case errors.Is(err, auth.ErrPasswordRequired), errors.Is(err, auth.ErrPasswordTooLong):
		return "password", true
	case errors.Is(err, auth.ErrEmailRequired):
		return "email", true
	case errors.Is(err, auth.ErrOrganisationNameRequired):
		return "name", true
	}
	return "", false
}
