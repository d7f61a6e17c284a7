package promptvault

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the record encoding.
type Format string

// Supported record formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormat parses "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath infers the format from a file extension (.json, .yaml, .yml).
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// rawField is one undecoded record value; decode assigns it to a pointer.
type rawField interface {
	decode(dst any) error
}

// record is the generic field map produced by the first decoding step.
type record map[string]rawField

type jsonField json.RawMessage

func (f jsonField) decode(dst any) error { return json.Unmarshal([]byte(f), dst) }

type yamlField struct{ node *yaml.Node }

func (f yamlField) decode(dst any) error { return f.node.Decode(dst) }

// Serialize encodes v as a record: declared fields in declaration order, then class_name.
func Serialize(v Variant, f Format) ([]byte, error) {
	fields, err := fieldsOf(v)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatJSON:
		return encodeJSON(fields)
	case FormatYAML:
		return encodeYAML(fields)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func encodeJSON(fields []fieldValue) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.MarshalWithOption(fv.name, json.DisableHTMLEscape())
		if err != nil {
			return nil, err
		}
		// Values are indented one level deeper than the record keys.
		val, err := json.MarshalIndentWithOption(fv.value, "  ", "  ", json.DisableHTMLEscape())
		if err != nil {
			return nil, fmt.Errorf("promptvault: encode field %q: %w", fv.name, err)
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	if len(fields) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func encodeYAML(fields []fieldValue) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fv := range fields {
		var val yaml.Node
		if err := val.Encode(fv.value); err != nil {
			return nil, fmt.Errorf("promptvault: encode field %q: %w", fv.name, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fv.name}
		doc.Content = append(doc.Content, key, &val)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(f Format, data []byte) (record, error) {
	switch f {
	case FormatJSON:
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("promptvault: decode json record: %w", err)
		}
		rec := make(record, len(raw))
		for k, v := range raw {
			rec[k] = jsonField(v)
		}
		return rec, nil
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("promptvault: decode yaml record: %w", err)
		}
		if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
			return nil, &MalformedRecordError{Err: errors.New("empty document")}
		}
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return nil, &MalformedRecordError{Err: fmt.Errorf("expected a mapping at line %d", root.Line)}
		}
		rec := make(record, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			rec[root.Content[i].Value] = yamlField{node: root.Content[i+1]}
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Deserialize decodes a record into the variant registered under its class_name.
//
// Decoding is a deliberate two-step contract. First the record becomes a generic
// field map and the variant is constructed from its factory with every field it
// declares (fields it does not declare are dropped). Then the type tag, which is
// outside the constructor path, is patched onto the instance with its serialized
// value. An unregistered tag falls back to the base Template with a warning event.
func (r *Registry) Deserialize(f Format, data []byte) (Variant, error) {
	rec, err := decodeRecord(f, data)
	if err != nil {
		return nil, err
	}
	rawTag, ok := rec[tagKey]
	if !ok {
		return nil, &MalformedRecordError{Field: tagKey, Err: errors.New("missing type tag")}
	}
	var tag string
	if err := rawTag.decode(&tag); err != nil {
		return nil, &MalformedRecordError{Field: tagKey, Err: err}
	}
	if tag == "" {
		return nil, &MalformedRecordError{Field: tagKey, Err: errors.New("empty type tag")}
	}
	delete(rec, tagKey)

	factory, ok := r.Resolve(tag)
	if !ok {
		r.logger.Warn().Str("tag", tag).Str("fallback", BaseTag).Msg("unresolved template variant, using base")
		factory = newBaseVariant
	}
	v := factory()
	elem, err := variantValue(v)
	if err != nil {
		return nil, fmt.Errorf("factory for %q: %w", tag, err)
	}
	schema, err := schemaOf(elem.Type())
	if err != nil {
		return nil, err
	}

	for _, fld := range schema.fields {
		raw, ok := rec[fld.name]
		if !ok {
			continue
		}
		delete(rec, fld.name)
		dst := elem.FieldByIndex(fld.index)
		dst.Set(reflect.Zero(dst.Type()))
		if err := raw.decode(dst.Addr().Interface()); err != nil {
			return nil, &MalformedRecordError{Field: fld.name, Err: err}
		}
	}
	for name := range rec {
		r.logger.Debug().Str("tag", tag).Str("field", name).Msg("dropping undeclared record field")
	}

	if TagOf(v) != tag {
		v.Base().tag = tag
	}
	return v, nil
}

// Clone returns a copy of v whose declared fields share no memory with v.
// Fields without a prompt tag are copied shallowly.
func Clone(v Variant) (Variant, error) {
	elem, err := variantValue(v)
	if err != nil {
		return nil, err
	}
	schema, err := schemaOf(elem.Type())
	if err != nil {
		return nil, err
	}
	out := reflect.New(elem.Type())
	out.Elem().Set(elem)
	for _, fld := range schema.fields {
		src := elem.FieldByIndex(fld.index)
		switch src.Kind() {
		case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Struct, reflect.Array:
		default:
			continue
		}
		data, err := json.Marshal(src.Interface())
		if err != nil {
			return nil, fmt.Errorf("promptvault: clone field %q: %w", fld.name, err)
		}
		dst := out.Elem().FieldByIndex(fld.index)
		dst.Set(reflect.Zero(dst.Type()))
		if err := json.Unmarshal(data, dst.Addr().Interface()); err != nil {
			return nil, fmt.Errorf("promptvault: clone field %q: %w", fld.name, err)
		}
	}
	return out.Interface().(Variant), nil
}
