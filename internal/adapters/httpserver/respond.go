package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/woodveneer/storefront/internal/adapters/xlsx"
	"github.com/woodveneer/storefront/internal/domain"
)

const maxJSONBody = 1 << 20

type envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Message string              `json:"message,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

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

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, data any, msg string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: msg})
}

func created(w http.ResponseWriter, data any, msg string) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data, Message: msg})
}

func fail(w http.ResponseWriter, code int, msg string, details []domain.FieldError) {
	writeJSON(w, code, envelope{Error: msg, Details: details})
}

// writeError maps domain errors to status codes. Anything unrecognised is
// logged with op and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(w, http.StatusBadRequest, ve.Error(), ve.Fields)
	case errors.Is(err, domain.ErrValidation):
		fail(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		fail(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		fail(w, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, domain.ErrForbidden):
		fail(w, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, domain.ErrNotFound):
		fail(w, http.StatusNotFound, op+": not found", nil)
	case errors.Is(err, domain.ErrConflict):
		fail(w, http.StatusConflict, err.Error(), nil)
	default:
		log.Error().Err(err).Str("op", op).Str("request_id", requestIDFrom(r.Context())).Msg("request failed")
		fail(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

// decodeJSON reads a size-capped JSON body into dst and runs struct validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &tooBig):
			return domain.NewValidationError("body", "request body too large")
		case errors.As(err, &typeErr):
			return domain.NewValidationError(typeErr.Field, "must be "+typeErr.Type.String())
		case errors.Is(err, io.EOF):
			return domain.NewValidationError("body", "request body is empty")
		default:
			return domain.NewValidationError("body", "invalid JSON")
		}
	}
	return check(dst)
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{Field: fieldPath(fe), Message: describe(fe)})
	}
	return out
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, found := strings.Cut(ns, "."); found {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "uuid":
		return "must be a UUID"
	case "hexcolor":
		return "must be a hex color"
	case "url":
		return "must be a URL"
	}
	return fmt.Sprintf("failed %q", fe.Tag())
}

// requireFields reports every absent field of a create payload.
func requireFields(present map[string]bool) error {
	var missing []string
	for name, ok := range present {
		if !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	out := &domain.ValidationError{}
	for _, name := range missing {
		out.Fields = append(out.Fields, domain.FieldError{Field: name, Message: "is required"})
	}
	return out
}

type workbook interface {
	WriteTo(w io.Writer) (int64, error)
}

func writeWorkbook(w http.ResponseWriter, r *http.Request, filename string, wb workbook) {
	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		writeError(w, r, "write workbook", err)
		return
	}
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
