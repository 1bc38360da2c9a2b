package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"

	"github.com/gorilla/mux"
)

// parseID reads an integer path variable. Ids that cannot exist (zero,
// negative) still parse and end up as a lookup miss.
func parseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON request body into dst. On failure it writes the
// response itself: a field map when the decoder can name the field, a plain
// 400 otherwise.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	var parseErr *time.ParseError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		response.ValidationError(w, map[string]string{field: field + " must be " + describeType(typeErr.Type)})
	case errors.As(err, &parseErr):
		response.ValidationError(w, map[string]string{"body": "invalid timestamp " + strconv.Quote(parseErr.Value)})
	default:
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
	}
	return false
}

var dateTimeType = reflect.TypeOf(dto.DateTime{})

func describeType(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	if t == dateTimeType || t == reflect.PointerTo(dateTimeType) {
		return "a datetime (RFC 3339, or YYYY-MM-DDTHH:MM:SS read as UTC)"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	}
	return "a valid " + t.String()
}

// parsePageQuery reads skip and limit, falling back to 0 and
// dto.DefaultListLimit. Non-numeric values are reported per field.
func parsePageQuery(r *http.Request) (dto.PageQuery, map[string]string) {
	page := dto.PageQuery{Skip: 0, Limit: dto.DefaultListLimit}
	fieldErrors := map[string]string{}

	q := r.URL.Query()
	if raw := q.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["skip"] = "skip must be an integer"
		}
		page.Skip = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["limit"] = "limit must be an integer"
		}
		page.Limit = n
	}

	return page, fieldErrors
}

// writeError maps usecase errors onto HTTP responses. Anything unrecognised,
// storage failures included, becomes a 500 with the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		response.BadRequest(w, "Email already registered")
	case errors.Is(err, usecase.ErrInvalidDate):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
