package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
	Validate.RegisterTagNameFunc(jsonFieldName)
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

// ValidateStruct returns one entry per failed field, or nil when s is valid.
func ValidateStruct(s interface{}) []*ErrorResponse {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []*ErrorResponse{{Field: "", Tag: "", Msg: err.Error()}}
	}

	var out []*ErrorResponse
	for _, fe := range validationErrors {
		element := ErrorResponse{Field: fe.Field(), Tag: fe.Tag()}

		switch fe.Tag() {
		case "required":
			element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
		case "gte":
			element.Msg = fmt.Sprintf("Field '%s' must be at least %s.", element.Field, fe.Param())
		case "lte":
			element.Msg = fmt.Sprintf("Field '%s' must be at most %s.", element.Field, fe.Param())
		case "ne":
			element.Msg = fmt.Sprintf("Field '%s' must not be '%s'.", element.Field, fe.Param())
		case "oneof":
			element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, fe.Param())
		case "datetime":
			element.Msg = fmt.Sprintf("Field '%s' must match the format %s.", element.Field, fe.Param())
		default:
			element.Msg = fmt.Sprintf("Field '%s' failed validation for tag '%s'.", element.Field, element.Tag)
		}
		out = append(out, &element)
	}
	return out
}

// HasTagFailure reports whether any entry failed the given field/tag pair.
func HasTagFailure(errs []*ErrorResponse, field, tag string) bool {
	for _, e := range errs {
		if e.Field == field && e.Tag == tag {
			return true
		}
	}
	return false
}
