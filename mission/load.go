package mission

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"
)

// ErrSchema is returned when a mission file does not
// match the expected structure.
var ErrSchema = errors.New("mission does not match schema")

//go:embed mission.schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("mission.schema.json", schemaSource)
	})
	return schema, schemaErr
}

// Load reads the mission file at `path`.
// If `validate` is true, the content is first checked against the mission schema.
func Load(path string, validate bool) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(raw, validate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML mission, in any encoding
// detectable from its content (UTF-8, UTF-16 with BOM, Windows-1252).
func Parse(raw []byte, validate bool) (*Config, error) {
	text, err := toUTF8(raw)
	if err != nil {
		return nil, err
	}
	if validate {
		if err := Validate(text); err != nil {
			return nil, err
		}
	}
	var cfg Config
	if err := yaml.Unmarshal(text, &cfg); err != nil {
		return nil, fmt.Errorf("invalid mission yaml: %w", err)
	}
	cfg.setDefaults()
	return &cfg, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func toUTF8(raw []byte) ([]byte, error) {
	enc, name, _ := charset.DetermineEncoding(raw, "text/plain")
	if name == "utf-8" {
		return bytes.TrimPrefix(raw, utf8BOM), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s content: %w", name, err)
	}
	return out, nil
}

// Validate checks the UTF-8 YAML `text` against the mission schema.
// Building coordinates are not checked: unknown encodings
// are tolerated and reported when placing buildings.
func Validate(text []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling mission schema: %w", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(text, &doc); err != nil {
		return fmt.Errorf("invalid mission yaml: %w", err)
	}
	// the validator expects JSON values
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
