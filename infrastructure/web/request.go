package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrEmptyBody is returned by Decode when the request carried no body.
var ErrEmptyBody = errors.New("request body is empty")

// DefaultMaxBodyBytes bounds how much of a request body Decode will read.
const DefaultMaxBodyBytes = 1 << 20

// Param returns the web call parameters from the request.
func Param(r *http.Request, key string) string {
	return r.PathValue(key)
}

// QueryParam returns query parameters from the request.
func QueryParam(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

// Decoder represents data that can be decoded.
type Decoder interface {
	Decode(data []byte) error
}

type validator interface {
	Validate() error
}

// Decode reads the body of an HTTP request and decodes it into v. Values
// implementing Decoder decode themselves, anything else is treated as JSON.
// If v implements Validate() error it is called afterwards.
func Decode(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxBodyBytes))
	if err != nil {
		return fmt.Errorf("unable to read request body: %w", err)
	}

	if len(data) == 0 {
		return ErrEmptyBody
	}

	if decoder, ok := v.(Decoder); ok {
		if err := decoder.Decode(data); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("json decode: %w", err)
		}
	}

	if validator, ok := v.(validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("validation: %w", err)
		}
	}

	return nil
}
