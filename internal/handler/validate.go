package handler

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// validate is the shared validator instance for request DTOs.  Field
// names reported in errors come from the json tags so the envelope
// matches what the client actually sent.
var validate = newValidator()

// auMobilePattern accepts Australian mobile numbers in local (04...)
// or international (+614... / 614...) form.
var auMobilePattern = regexp.MustCompile(`^(?:\+?61|0)4\d{8}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// bookingdate: calendar date string, YYYY-MM-DD.
	_ = v.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	// aumobile: Australian mobile phone number.
	_ = v.RegisterValidation("aumobile", func(fl validator.FieldLevel) bool {
		return auMobilePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	// resstatus: one of the reservation status enum values.
	_ = v.RegisterValidation("resstatus", func(fl validator.FieldLevel) bool {
		return model.IsStatus(fl.Field().String())
	})
	return v
}

// validationMessages maps failed tags to the human-readable messages
// the API has always returned for those fields.
var validationMessages = map[string]string{
	"bookingdate": "Not a valid date",
	"aumobile":    "Not a valid phone number",
	"resstatus":   "Not a valid status",
	"required":    "is required",
	"gt":          "must be greater than 0",
	"min":         "must not be empty",
}

// validateStruct runs the shared validator over a bound request DTO
// and converts any failures into envelope entries with
// location="body".  A nil return means the DTO passed validation.
func validateStruct(req interface{}) []APIError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []APIError{serverError("validation failed")}
	}
	out := make([]APIError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := validationMessages[fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("failed %s validation", fe.Tag())
		}
		out = append(out, APIError{
			Value:    fmt.Sprintf("%v", fe.Value()),
			Msg:      msg,
			Param:    fe.Field(),
			Location: "body",
		})
	}
	return out
}
