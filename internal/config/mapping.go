package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/mapping"
	"go.yaml.in/yaml/v3"
)

// Mapping is the YAML overrides file:
//
//	types:
//	  json: json
//	fallback: string
//	exclude:
//	  - tenant_id
type Mapping struct {
	// Types is merged over the dialect's default type table.
	Types map[string]string `yaml:"types"`

	// Fallback replaces "string" for unmapped catalog types.
	Fallback string `yaml:"fallback"`

	// Exclude is appended to the default column exclusion set.
	Exclude []string `yaml:"exclude"`
}

// LoadMapping reads and parses the overrides file at path.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to read mapping file "+path, err)
	}
	return ParseMapping(data)
}

// ParseMapping decodes overrides from YAML. Unknown keys are rejected.
func ParseMapping(data []byte) (*Mapping, error) {
	m := &Mapping{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid mapping file", err)
	}
	for src, dst := range m.Types {
		if dst == "" {
			return nil, errs.Newf(errs.ErrKindInvalidInput, "mapping for %q has an empty target type", src)
		}
	}
	return m, nil
}

// Mapper layers the overrides onto base.
func (m *Mapping) Mapper(base mapping.Mapper) mapping.Mapper {
	if m == nil || (len(m.Types) == 0 && m.Fallback == "") {
		return base
	}
	return base.With(mapping.TypeMap(m.Types), m.Fallback)
}
