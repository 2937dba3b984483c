package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is shared across requests; validator.Validate caches struct
// metadata, so one instance is cheaper than one per call.
var validate = validator.New()

// Validatable lets a request type carry its own validation rules instead
// of struct tags.
type Validatable interface {
	Validate() error
}

// maxRequestBodyBytes caps how much of a request body DecodeJSON reads.
// Every payload this API accepts is a small JSON object, so 1 MiB leaves
// generous headroom while keeping oversized bodies off the decoder.
const maxRequestBodyBytes = 1 << 20

// DecodeJSON unmarshals the request body into v, reading at most
// maxRequestBodyBytes. The raw decode error is returned so callers can log
// the position information json provides; an oversized body surfaces as an
// *http.MaxBytesError.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest checks v against its own Validate method when it has
// one, falling back to the validate struct tags.
func ValidateRequest(v interface{}) error {
	if validatable, ok := v.(Validatable); ok {
		return validatable.Validate()
	}
	return validate.Struct(v)
}

// DecodeAndValidate runs the decode-then-validate prologue handlers share,
// returning the first error.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateRequest(v)
}
