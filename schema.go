package promptvault

import (
	"fmt"
	"reflect"
	"sync"
)

// tagKey is the record key holding the type tag.
const tagKey = "class_name"

type recordField struct {
	name  string
	index []int
}

// recordSchema lists the declared fields of a variant type in declaration order.
// Fields of embedded structs (Template first, usually) are expanded in place.
type recordSchema struct {
	fields []recordField
}

var schemaCache sync.Map // reflect.Type -> *recordSchema

var templateType = reflect.TypeFor[Template]()

// variantValue returns the addressable struct behind v.
func variantValue(v Variant) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, ErrInvalidVariant
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %T is not a pointer to struct", ErrInvalidVariant, v)
	}
	if v.Base() == nil {
		return reflect.Value{}, fmt.Errorf("%w: %T has no base template", ErrInvalidVariant, v)
	}
	return rv.Elem(), nil
}

func schemaOf(typ reflect.Type) (*recordSchema, error) {
	if cached, ok := schemaCache.Load(typ); ok {
		return cached.(*recordSchema), nil
	}
	schema := &recordSchema{}
	seen := make(map[string]bool)
	if err := collectFields(typ, nil, schema, seen); err != nil {
		return nil, err
	}
	schemaCache.Store(typ, schema)
	return schema, nil
}

func collectFields(typ reflect.Type, prefix []int, schema *recordSchema, seen map[string]bool) error {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		index := append(append([]int(nil), prefix...), i)
		name := f.Tag.Get("prompt")
		if f.Anonymous && f.Type.Kind() == reflect.Struct && name == "" {
			if err := collectFields(f.Type, index, schema, seen); err != nil {
				return err
			}
			continue
		}
		if name == "" || name == "-" {
			continue
		}
		if !f.IsExported() {
			return fmt.Errorf("%w: %s.%s is tagged %q but unexported", ErrInvalidVariant, typ.Name(), f.Name, name)
		}
		if name == tagKey {
			return fmt.Errorf("%w: %s.%s uses reserved name %q", ErrInvalidVariant, typ.Name(), f.Name, tagKey)
		}
		if seen[name] {
			return fmt.Errorf("%w: %s declares %q twice", ErrInvalidVariant, typ.Name(), name)
		}
		if k := f.Type.Kind(); k == reflect.Func || k == reflect.Chan || k == reflect.UnsafePointer || k == reflect.Complex64 || k == reflect.Complex128 {
			return fmt.Errorf("%w: %s.%s (%s)", ErrUnsupportedField, typ.Name(), f.Name, f.Type)
		}
		seen[name] = true
		schema.fields = append(schema.fields, recordField{name: name, index: index})
	}
	return nil
}

// tagForType derives the default type tag from the Go type of a variant.
func tagForType(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == templateType {
		return BaseTag
	}
	return typ.Name()
}

// TagOf returns the type tag of v: the tag stamped by Registry.New or restored by
// Deserialize, else the name derived from v's Go type (BaseTag for *Template).
func TagOf(v Variant) string {
	if v == nil {
		return ""
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return tagForType(rv.Type())
	}
	if b := v.Base(); b != nil && b.tag != "" {
		return b.tag
	}
	return tagForType(reflect.TypeOf(v))
}

type fieldValue struct {
	name  string
	value any
}

// fieldsOf returns the declared fields of v followed by the type tag.
func fieldsOf(v Variant) ([]fieldValue, error) {
	elem, err := variantValue(v)
	if err != nil {
		return nil, err
	}
	schema, err := schemaOf(elem.Type())
	if err != nil {
		return nil, err
	}
	out := make([]fieldValue, 0, len(schema.fields)+1)
	for _, f := range schema.fields {
		out = append(out, fieldValue{name: f.name, value: elem.FieldByIndex(f.index).Interface()})
	}
	return append(out, fieldValue{name: tagKey, value: TagOf(v)}), nil
}
