package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat reports a project file extension no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported project format")

// Format identifies a project file encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatSQLite Format = "sqlite"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the project at path, choosing the decoder by extension.
func Load(ctx context.Context, path string) (*Project, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var p *Project
	if format == FormatSQLite {
		p, err = loadSQLite(ctx, path)
	} else {
		p, err = loadTree(path, format)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", path, err)
	}
	p.sourcePath = path
	return p, nil
}

func loadTree(path string, format Format) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := decodeTree(data, format)
	if err != nil {
		return nil, err
	}
	return raw.toProject()
}

func decodeTree(data []byte, format Format) (fileProject, error) {
	var raw fileProject
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		err = dec.Decode(&raw)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&raw)
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&raw)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if errors.Is(err, io.EOF) {
		return fileProject{}, nil
	}
	if err != nil {
		return fileProject{}, fmt.Errorf("decode %s: %w", format, err)
	}
	return raw, nil
}
