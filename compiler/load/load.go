package load

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/blueprint/schema"
)

// Format is the encoding of a schema document file.
type Format string

// Supported document formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatOf returns the format of a path by its extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("load: unsupported document extension %q", ext)
	}
}

// Load reads, decodes and validates the schema document at path.
func Load(path string) (*schema.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	doc, err := Decode(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// Decode decodes and validates a schema document.
func Decode(r io.Reader, format Format) (*schema.Document, error) {
	var file File
	if err := decode(r, format, &file); err != nil {
		return nil, err
	}
	doc, err := file.Schema()
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decode(r io.Reader, format Format, v any) error {
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(v)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(v)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(v)
	default:
		return fmt.Errorf("load: unsupported format %q", format)
	}
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", format, err)
	}
	return nil
}

// Save validates doc and writes it to path in the format of its extension.
func Save(path string, doc *schema.Document) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, format, doc); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save: %w", err)
	}
	return f.Close()
}

// Encode validates doc and writes it to w as a bare document.
func Encode(w io.Writer, format Format, doc *schema.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("load: unsupported format %q", format)
	}
}
