package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/admission"
)

// APIError is one entry of the structured error envelope returned on
// every 4xx/5xx response: {"errors":[{value,msg,param,location}]}.
// The shape identifies the offending field and why it was refused.
type APIError struct {
	Value    string `json:"value"`
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

type errorEnvelope struct {
	Errors []APIError `json:"errors"`
}

// errorJSON writes the error envelope with the given status.
func errorJSON(c echo.Context, status int, errs ...APIError) error {
	return c.JSON(status, errorEnvelope{Errors: errs})
}

// malformedID builds the standard error for an id that fails the
// 24-character hex pattern check.
func malformedID(value, param, location string) APIError {
	return APIError{
		Value:    value,
		Msg:      "Not a valid object ID",
		Param:    param,
		Location: location,
	}
}

// notFound builds the standard error for a well-formed id with no
// matching record.
func notFound(value, param, msg string) APIError {
	return APIError{
		Value:    value,
		Msg:      msg,
		Param:    param,
		Location: "params",
	}
}

// rejectionError converts an admission rejection into the envelope
// entry format.  Admission always judges request-body fields.
func rejectionError(rej *admission.Rejection) APIError {
	return APIError{
		Value:    rej.Value,
		Msg:      rej.Msg,
		Param:    rej.Param,
		Location: "body",
	}
}

// serverError builds a generic 5xx envelope entry.  Store-level
// failures are fatal to the current request only and never retried.
func serverError(msg string) APIError {
	return APIError{
		Value:    "",
		Msg:      msg,
		Param:    "",
		Location: "server",
	}
}
