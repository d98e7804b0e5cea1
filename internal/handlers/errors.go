package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Shimizu-Technology/yt-transcript-api/internal/models"
	"github.com/Shimizu-Technology/yt-transcript-api/internal/services/transcript"
)

// RegisterFieldNames makes validation errors report the wire name of a
// field (json tag, else form tag) instead of the Go struct field name.
// Call once before serving.
func RegisterFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// validationError responds 422 with the fixed validation shape.
// It understands binding errors and *transcript.ValidationError.
func validationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{
		Error:   "Validation error",
		Details: validationIssues(err),
		Message: "Please check your input parameters",
	})
}

func validationIssues(err error) []models.ValidationIssue {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]models.ValidationIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, models.ValidationIssue{
				Field:   fe.Field(),
				Message: fieldMessage(fe),
			})
		}
		return issues
	}

	var vidErr *transcript.ValidationError
	if errors.As(err, &vidErr) {
		return []models.ValidationIssue{{
			Field:   "video_id",
			Message: vidErr.Error(),
			Input:   vidErr.Input,
		}}
	}

	return []models.ValidationIssue{{Field: "body", Message: err.Error()}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	default:
		return "Failed on the '" + fe.Tag() + "' rule"
	}
}

// NotFound is the fallback for unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "Endpoint not found",
		Message: "Please check the API documentation at /docs",
	})
}
