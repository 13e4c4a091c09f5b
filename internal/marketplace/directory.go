// Package marketplace holds the parts and mechanics directory suggested
// alongside a diagnosis.
package marketplace

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/autocare/autocare/internal/catalog"
)

//go:embed directory.yaml
var embedded []byte

var defaultDirectory = sync.OnceValues(func() (*Directory, error) {
	return Parse(embedded)
})

// Directory is an immutable, in-memory listing of parts and mechanics.
type Directory struct {
	parts     []Part
	mechanics []Mechanic
}

type document struct {
	Parts     []Part     `yaml:"parts"`
	Mechanics []Mechanic `yaml:"mechanics"`
}

// Default returns the directory compiled into the binary.
func Default() (*Directory, error) {
	return defaultDirectory()
}

// Parse decodes and validates a YAML directory.
func Parse(data []byte) (*Directory, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}
	return &Directory{parts: doc.Parts, mechanics: doc.Mechanics}, nil
}

func validate(doc *document) error {
	var problems []string
	seen := map[string]bool{}
	for i, p := range doc.Parts {
		switch {
		case p.ID == "":
			problems = append(problems, fmt.Sprintf("parts[%d]: missing id", i))
		case seen[p.ID]:
			problems = append(problems, fmt.Sprintf("%s: duplicate id", p.ID))
		}
		seen[p.ID] = true
		if p.Name == "" {
			problems = append(problems, fmt.Sprintf("%s: missing name", p.ID))
		}
		if p.Price < 0 || p.Shipping.Cost < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative price", p.ID))
		}
	}
	for i, m := range doc.Mechanics {
		switch {
		case m.ID == "":
			problems = append(problems, fmt.Sprintf("mechanics[%d]: missing id", i))
		case seen[m.ID]:
			problems = append(problems, fmt.Sprintf("%s: duplicate id", m.ID))
		}
		seen[m.ID] = true
		if m.Location.Country == "" {
			problems = append(problems, fmt.Sprintf("%s: missing country", m.ID))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid directory: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Parts returns every part in directory order.
func (d *Directory) Parts() []Part { return d.parts }

// Mechanics returns every mechanic in directory order.
func (d *Directory) Mechanics() []Mechanic { return d.mechanics }

// Part returns a part by id.
func (d *Directory) Part(id string) (Part, bool) {
	for _, p := range d.parts {
		if p.ID == id {
			return p, true
		}
	}
	return Part{}, false
}

// Mechanic returns a mechanic by id.
func (d *Directory) Mechanic(id string) (Mechanic, bool) {
	for _, m := range d.mechanics {
		if m.ID == id {
			return m, true
		}
	}
	return Mechanic{}, false
}

// fold lower-cases s the same way descriptions are folded for matching.
func fold(s string) string {
	return catalog.Fold(strings.TrimSpace(s))
}
