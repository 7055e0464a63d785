package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docform/internal/structure"
)

// LoadRules reads a YAML rules file. Keys absent from the file keep their
// default values; an empty path returns the defaults.
func LoadRules(path string) (structure.Rules, error) {
	rules := structure.DefaultRules()
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes YAML rules over the defaults. Unknown keys are rejected.
func ParseRules(data []byte) (structure.Rules, error) {
	rules := structure.DefaultRules()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return structure.DefaultRules(), fmt.Errorf("parse rules: %w", err)
	}
	if _, err := structure.New(rules); err != nil {
		return structure.DefaultRules(), fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}
