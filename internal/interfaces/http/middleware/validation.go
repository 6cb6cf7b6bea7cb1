package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator registers the custom tags and makes validation errors
// report json (or form) field names. Safe to call more than once.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("calendar_date", isCalendarDate)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return ""
}

// isCalendarDate accepts YYYY-MM-DD strings
func isCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(shared.DateLayout, fl.Field().String())
	return err == nil
}

// FormatValidationErrors turns binding errors into the validation envelope
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: describe(fe)})
		}
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 validation response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

var fixedMessages = map[string]string{
	"required":      "This field is required",
	"email":         "Invalid email format",
	"uuid":          "Invalid UUID format",
	"e164":          "Invalid phone number",
	"calendar_date": "Must be a date in YYYY-MM-DD format",
}

func describe(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	p := fe.Param()
	switch fe.Tag() {
	case "min", "max":
		bound := "at least "
		if fe.Tag() == "max" {
			bound = "at most "
		}
		if fe.Kind() == reflect.String {
			return "Must be " + bound + p + " characters"
		}
		return "Must be " + bound + p
	case "len":
		return "Must be exactly " + p + " characters"
	case "oneof":
		return "Must be one of: " + p
	case "gt":
		return "Must be greater than " + p
	case "gte":
		return "Must be greater than or equal to " + p
	case "lte":
		return "Must be less than or equal to " + p
	case "datetime":
		return "Must be a date in " + p + " format"
	}
	return "Invalid value"
}
