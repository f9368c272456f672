package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.schema.json
var schemaFS embed.FS

// supportedMajor is the catalog schema major version this build reads.
const supportedMajor = "v1"

// Format identifies a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a Format from a file extension. JSON files are read
// with the YAML decoder.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: unsupported file extension %q", ErrInvalidCatalog, filepath.Ext(path))
	}
}

type exerciseFile struct {
	SchemaVersion string     `yaml:"schema_version" toml:"schema_version"`
	Kind          string     `yaml:"kind" toml:"kind"`
	Exercises     []Exercise `yaml:"exercises" toml:"exercises"`
}

type taskFile struct {
	SchemaVersion string      `yaml:"schema_version" toml:"schema_version"`
	Kind          string      `yaml:"kind" toml:"kind"`
	Tasks         []ShellTask `yaml:"tasks" toml:"tasks"`
}

// LoadExercises reads and validates an exercise catalog file.
func LoadExercises(path string) (*Exercises, error) {
	data, format, err := readCatalogFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseExercises(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// LoadTasks reads and validates a shell task catalog file.
func LoadTasks(path string) (*Tasks, error) {
	data, format, err := readCatalogFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseTasks(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// ParseExercises decodes and validates an exercise catalog document.
func ParseExercises(data []byte, format Format) (*Exercises, error) {
	if err := checkDocument(data, format, "exercises"); err != nil {
		return nil, err
	}
	var doc exerciseFile
	if err := decode(data, format, &doc); err != nil {
		return nil, err
	}
	return NewExercises(doc.Exercises)
}

// ParseTasks decodes and validates a shell task catalog document.
func ParseTasks(data []byte, format Format) (*Tasks, error) {
	if err := checkDocument(data, format, "tasks"); err != nil {
		return nil, err
	}
	var doc taskFile
	if err := decode(data, format, &doc); err != nil {
		return nil, err
	}
	return NewTasks(doc.Tasks)
}

func readCatalogFile(path string) ([]byte, Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read %s: %v", ErrInvalidCatalog, path, err)
	}
	return data, format, nil
}

func decode(data []byte, format Format, v any) error {
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	case FormatTOML:
		err = toml.Unmarshal(data, v)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidCatalog, format, err)
	}
	return nil
}

// checkDocument validates the generic document tree against the embedded
// schema for kind and checks the schema_version major.
func checkDocument(data []byte, format Format, kind string) error {
	var raw map[string]any
	if err := decode(data, format, &raw); err != nil {
		return err
	}

	// The validator expects JSON-shaped values (float64, []any, map[string]any).
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	sch, err := compiledSchema(kind)
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	version, _ := raw["schema_version"].(string)
	if !semver.IsValid(version) || semver.Major(version) != supportedMajor {
		return fmt.Errorf("%w: schema_version %q is not supported (want %s.x.y)", ErrInvalidCatalog, version, supportedMajor)
	}
	return nil
}

// schemaCache caches compiled catalog schemas by kind.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func compiledSchema(kind string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}

	b, err := schemaFS.ReadFile("data/" + kind + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("read %s schema: %w", kind, err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", kind, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://bitvoyager/%s.json", kind)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", kind, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", kind, err)
	}

	schemaCache.Store(kind, compiled)
	return compiled, nil
}
