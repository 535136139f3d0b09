package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

const maxBodyBytes = 1 << 20

// newValidator reports JSON field names in validation errors.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// decodeBody reads a JSON body into dst and runs struct validation. An empty
// body decodes as the zero value so required-field checks can report it.
func decodeBody(r *http.Request, validate *validator.Validate, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domerrors.NewValidationError("body", "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return validationFailure(err)
	}
	return nil
}

func validationFailure(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return domerrors.NewValidationError("body", "Invalid request body")
	}
	fe := errs[0]
	field := fe.Field()
	if fe.Tag() == "max" {
		return domerrors.NewValidationError(field, capitalize(field)+" is too long")
	}
	return domerrors.NewValidationError(field, "Invalid "+field)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func itoa(n int) string { return strconv.Itoa(n) }
