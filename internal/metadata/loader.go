// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"pdfmeta/internal/apperr"
)

// DefaultFile is the metadata file used when none is given
const DefaultFile = "metadata.json"

// Options controls how a metadata file is interpreted
type Options struct {
	// Strict rejects keys that are not recognized fields instead of ignoring them
	Strict bool
}

// Result is a loaded metadata file
type Result struct {
	Path    string
	Format  string
	Mapping Mapping
	// Ignored lists unrecognized keys, sorted
	Ignored []string
}

// Load reads the metadata file at path.
//
// Values of recognized fields are coerced to strings at this boundary:
// strings are kept, numbers and booleans keep their literal text, and
// null, arrays or objects are rejected with a ConfigTypeError.
func Load(path string, opts Options) (*Result, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, apperr.New(apperr.KindConfigNotFound, path, "cannot open configuration file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, apperr.New(apperr.KindConfigNotFound, path, "cannot stat configuration file", err)
	}
	if info.IsDir() {
		return nil, apperr.New(apperr.KindConfigNotFound, path, "configuration path is a directory", nil)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.New(apperr.KindConfigNotFound, path, "cannot read configuration file", err)
	}

	var raw map[string]scalar
	format := formatFor(path)
	switch format {
	case "yaml":
		raw, err = decodeYAML(data)
	default:
		raw, err = decodeJSON(data)
	}
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) {
			e.Path = path
			return nil, e
		}
		return nil, apperr.New(apperr.KindConfigParse, path, "cannot parse "+strings.ToUpper(format), err)
	}

	return build(path, format, raw, opts)
}

// Parse interprets data as a JSON metadata document
func Parse(data []byte, opts Options) (*Result, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, apperr.New(apperr.KindConfigParse, "", "cannot parse JSON", err)
	}
	return build("", "json", raw, opts)
}

func build(path, format string, raw map[string]scalar, opts Options) (*Result, error) {
	mapping := make(Mapping, len(raw))
	ignored := make(map[string]struct{})

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := raw[key]
		if !IsKnown(key) {
			ignored[key] = struct{}{}
			continue
		}
		if !v.ok {
			return nil, apperr.New(apperr.KindConfigType, path,
				fmt.Sprintf("field %q must be a string, number or boolean, got %s", key, v.kind), nil)
		}
		mapping[Field(key)] = v.text
	}

	res := &Result{
		Path:    path,
		Format:  format,
		Mapping: mapping,
		Ignored: sortedKeys(ignored),
	}
	if opts.Strict && len(res.Ignored) > 0 {
		return nil, apperr.New(apperr.KindConfigParse, path,
			fmt.Sprintf("unknown metadata field(s): %s", strings.Join(res.Ignored, ", ")), nil)
	}
	return res, nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// scalar is a metadata value after the validation pass
type scalar struct {
	text string
	kind string
	ok   bool
}

func decodeJSON(data []byte) (map[string]scalar, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.New(apperr.KindConfigParse, "", "cannot parse JSON: file is empty", nil)
		}
		return nil, apperr.New(apperr.KindConfigParse, "", "cannot parse JSON"+position(data, err), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, apperr.New(apperr.KindConfigParse, "", "cannot parse JSON: unexpected data after top-level object", nil)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, apperr.New(apperr.KindConfigParse, "",
			fmt.Sprintf("top-level value must be an object, got %s", jsonKind(doc)), nil)
	}

	out := make(map[string]scalar, len(obj))
	for k, v := range obj {
		out[k] = jsonScalar(v)
	}
	return out, nil
}

func jsonScalar(v any) scalar {
	switch t := v.(type) {
	case string:
		return scalar{text: t, kind: "string", ok: true}
	case json.Number:
		return scalar{text: t.String(), kind: "number", ok: true}
	case bool:
		if t {
			return scalar{text: "true", kind: "boolean", ok: true}
		}
		return scalar{text: "false", kind: "boolean", ok: true}
	default:
		return scalar{kind: jsonKind(v)}
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// position turns a syntax error offset into a line/column suffix
func position(data []byte, err error) string {
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return ""
	}
	offset := int(se.Offset)
	if offset > len(data) {
		offset = len(data)
	}
	line := 1 + bytes.Count(data[:offset], []byte("\n"))
	col := offset - bytes.LastIndexByte(data[:offset], '\n')
	return fmt.Sprintf(" at line %d, column %d", line, col)
}

func decodeYAML(data []byte) (map[string]scalar, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, apperr.New(apperr.KindConfigParse, "", "cannot parse YAML: file is empty", nil)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, apperr.New(apperr.KindConfigParse, "", "top-level value must be a mapping", nil)
	}

	out := make(map[string]scalar, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		out[key.Value] = yamlScalar(val)
	}
	return out, nil
}

func yamlScalar(n *yaml.Node) scalar {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return scalar{kind: "null"}
		case "!!int", "!!float":
			return scalar{text: n.Value, kind: "number", ok: true}
		case "!!bool":
			return scalar{text: strings.ToLower(n.Value), kind: "boolean", ok: true}
		default:
			return scalar{text: n.Value, kind: "string", ok: true}
		}
	case yaml.SequenceNode:
		return scalar{kind: "array"}
	default:
		return scalar{kind: "object"}
	}
}

func sortedKeys(ignored map[string]struct{}) []string {
	keys := make([]string, 0, len(ignored))
	for k := range ignored {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
