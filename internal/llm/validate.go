package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// compiled holds one *jsonschema.Schema per Schema.Name.
	compiled sync.Map
	printer  = message.NewPrinter(language.English)
)

// validateResponse checks raw against schema. A nil schema accepts anything.
// Every failure is an *ErrInvalidResponse carrying raw.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return invalid("empty reply")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("invalid JSON: %w", err)
	}
	sch, err := compileSchema(schema)
	if err != nil {
		return invalid("compile schema %q: %w", schema.Name, err)
	}
	if err := sch.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return invalid("schema %q: %s", schema.Name, firstLeaf(verr))
		}
		return invalid("schema %q: %w", schema.Name, err)
	}
	return nil
}

// firstLeaf reports the deepest cause, which names the offending field
// instead of the whole document.
func firstLeaf(verr *jsonschema.ValidationError) string {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	loc := "/" + strings.Join(verr.InstanceLocation, "/")
	return fmt.Sprintf("at %s: %s", loc, verr.ErrorKind.LocalizedString(printer))
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema.Name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// Go literals such as int and []string must become the generic JSON
	// values the compiler walks.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://llm/" + schema.Name + ".json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	actual, _ := compiled.LoadOrStore(schema.Name, s)
	return actual.(*jsonschema.Schema), nil
}

// stripFences removes a Markdown code fence some models wrap JSON in even
// when asked for structured output.
func stripFences(raw json.RawMessage) json.RawMessage {
	t := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(t, []byte("```")) || !bytes.HasSuffix(t, []byte("```")) || len(t) < 6 {
		return raw
	}
	t = t[3 : len(t)-3]
	// Drop the info string, e.g. "json".
	if i := bytes.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	} else {
		return raw
	}
	return json.RawMessage(bytes.TrimSpace(t))
}
