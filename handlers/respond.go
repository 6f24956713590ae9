package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"roster/auth"
	"roster/models"
	"roster/oauth"
	"roster/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError is a 400 body: either per-field messages or a single
// detail when the payload could not be parsed at all.
type validationError struct {
	fields map[string][]string
	detail string
}

func (e *validationError) Error() string {
	if e.detail != "" {
		return e.detail
	}
	return "invalid request body"
}

func (e *validationError) body() any {
	if e.detail != "" {
		return map[string]string{"detail": e.detail}
	}
	return e.fields
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// An empty body decodes as an empty object.
func decodeAndValidate(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
	default:
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &validationError{fields: map[string][]string{typeErr.Field: {typeMessage(typeErr)}}}
		}
		return &validationError{detail: fmt.Sprintf("JSON parse error - %v", err)}
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		fields := make(map[string][]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
		}
		return &validationError{fields: fields}
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

func typeMessage(e *json.UnmarshalTypeError) string {
	switch e.Type.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	default:
		return "Incorrect type."
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps an error from the service layer to its HTTP response.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.SugaredLogger, err error) {
	var (
		validationErr *validationError
		oauthErr      *oauth.Error
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, validationErr.body())
	case errors.Is(err, models.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, services.ErrRefreshRevoked):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &oauthErr):
		writeMessage(w, http.StatusGatewayTimeout, oauthErr.Message)
	default:
		log.Errorw("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} route parameter. Values that do not fit an id are
// reported as a missing resource.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("%s with id %s not found", resource, raw))
		return 0, false
	}
	return uint(id), true
}
