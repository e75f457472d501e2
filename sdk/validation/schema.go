package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// BodyField names errors that apply to the payload as a whole.
const BodyField = "body"

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	d, err := json.Marshal(fe)
	if err != nil {
		return err.Error()
	}
	return string(d)
}

// Fields returns the error message keyed by field name.
func (fe FieldErrors) Fields() map[string]string {
	m := make(map[string]string, len(fe))
	for _, f := range fe {
		m[f.Field] = f.Err
	}
	return m
}

// NewFieldError wraps a single field failure.
func NewFieldError(field string, err error) FieldErrors {
	return FieldErrors{{Field: field, Err: err.Error()}}
}

// Schema is a compiled JSON schema for a request payload.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

// CompileSchema compiles an in-memory JSON schema document.
func CompileSchema(name string, source string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	url := "mem://schemas/" + name
	if err := compiler.AddResource(url, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}

	s, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return &Schema{name: name, schema: s}, nil
}

// MustCompileSchema is CompileSchema for package level schemas.
func MustCompileSchema(name string, source string) *Schema {
	s, err := CompileSchema(name, source)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a raw JSON document. Every failure comes back as
// FieldErrors, including a body that is empty or not JSON at all.
func (s *Schema) Validate(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return NewFieldError(BodyField, errors.New("request body is empty"))
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return NewFieldError(BodyField, fmt.Errorf("invalid json: %w", err))
	}

	err := s.schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return NewFieldError(BodyField, err)
	}

	var fields FieldErrors
	collectSchemaErrors(&fields, ve)
	if len(fields) == 0 {
		return NewFieldError(BodyField, errors.New(ve.Message))
	}

	return fields
}

func collectSchemaErrors(fields *FieldErrors, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		if strings.HasSuffix(err.KeywordLocation, "/required") {
			for _, name := range missingProperties(err.Message) {
				*fields = append(*fields, FieldError{Field: name, Err: "field required"})
			}
			return
		}
		*fields = append(*fields, FieldError{
			Field: jsonPointerToField(err.InstanceLocation),
			Err:   err.Message,
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(fields, cause)
	}
}

// missingProperties pulls the quoted names out of a "missing properties"
// message.
func missingProperties(msg string) []string {
	_, list, ok := strings.Cut(msg, ":")
	if !ok {
		return []string{BodyField}
	}

	var names []string
	for _, part := range strings.Split(list, ",") {
		name := strings.Trim(strings.TrimSpace(part), `'"`)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return []string{BodyField}
	}
	return names
}

func jsonPointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return BodyField
	}
	return strings.ReplaceAll(ptr, "/", ".")
}
