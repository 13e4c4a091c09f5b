package api

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apperrors "github.com/autocare/autocare/internal/errors"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	diagnoseSchema = "diagnose"
	feedbackSchema = "feedback"
)

// Validator checks request bodies against the embedded JSON schemas.
type Validator struct {
	schemas map[string]*jsonschema.Schema
	printer *message.Printer
}

// NewValidator compiles every embedded schema.
func NewValidator() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	c := jsonschema.NewCompiler()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		raw, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", e.Name(), err)
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		if err := c.AddResource(schemaURL(name), doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
		names = append(names, name)
	}

	v := &Validator{
		schemas: make(map[string]*jsonschema.Schema, len(names)),
		printer: message.NewPrinter(language.English),
	}
	for _, name := range names {
		sch, err := c.Compile(schemaURL(name))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[name] = sch
	}
	return v, nil
}

func schemaURL(name string) string {
	return "schema://autocare/" + name + ".json"
}

// Decode reads the request body, validates it against the named schema and
// unmarshals it into dst. Every failure is an INVALID_INPUT error.
func (v *Validator) Decode(r *http.Request, schema string, dst any) error {
	sch, ok := v.schemas[schema]
	if !ok {
		return apperrors.Internal("unknown schema "+schema, nil)
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return apperrors.Invalid("failed to read request body")
	}
	if len(raw) > maxBodyBytes {
		return apperrors.Invalid("request body too large")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return apperrors.Invalid("request body is required")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return apperrors.Invalid("request body is not valid JSON")
	}
	if err := sch.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return apperrors.Invalid("validation failed", v.fieldErrors(ve)...)
		}
		return apperrors.Invalid("validation failed")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return apperrors.Invalid("request body does not match the expected shape")
	}
	return nil
}

// fieldErrors flattens a validation error tree into one entry per failing
// leaf, sorted by field.
func (v *Validator) fieldErrors(ve *jsonschema.ValidationError) []apperrors.FieldError {
	var out []apperrors.FieldError
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		if req, ok := e.ErrorKind.(*kind.Required); ok {
			for _, name := range req.Missing {
				out = append(out, apperrors.FieldError{
					Field:   fieldName(append(slices.Clone(e.InstanceLocation), name)),
					Message: "is required",
				})
			}
			return
		}
		out = append(out, apperrors.FieldError{
			Field:   fieldName(e.InstanceLocation),
			Message: e.ErrorKind.LocalizedString(v.printer),
		})
	}
	walk(ve)

	slices.SortStableFunc(out, func(a, b apperrors.FieldError) int {
		return strings.Compare(a.Field, b.Field)
	})
	return out
}

func fieldName(loc []string) string {
	if len(loc) == 0 {
		return "body"
	}
	return strings.Join(loc, ".")
}
