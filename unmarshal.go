package bmx

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Unmarshal parses a BMX document and stores the result in the value pointed to by v.
// If v is not a pointer to a struct, Unmarshal returns an error.
//
// Top-level fields are matched against blocks by their `bmx` tag:
//   - a string field receives the body of the text block with that name
//   - a struct, *struct or map[string]string field receives the attribute block with that name
//   - `bmx:"name,required"` fails when the block is missing
//   - `bmx:"-"` ignores the field
//
// Fields of an attribute struct are matched against attribute keys the same way.
//
// Example:
//
//	type Program struct {
//	    Vertex   string `bmx:"vertex"`
//	    Fragment string `bmx:"fragment"`
//	    Material struct {
//	        Name      string  `bmx:"name"`
//	        Roughness float64 `bmx:"roughness"`
//	        Shadows   bool    `bmx:"shadows"`
//	    } `bmx:"material"`
//	}
func Unmarshal(src []byte, v any) error {
	data, err := ParseString(string(src))
	if err != nil {
		return err
	}
	return UnmarshalData(data, v)
}

// UnmarshalData unmarshals a parsed Data into v.
func UnmarshalData(data *Data, v any) error {
	elem, err := structTarget(v)
	if err != nil {
		return err
	}

	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := elem.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		name, opts, skip := fieldName(field)
		if skip {
			continue
		}

		if fieldValue.Kind() == reflect.String {
			text, ok := data.Texts[name]
			if !ok {
				if hasOption(opts, "required") {
					return fmt.Errorf("required text block %s not found", name)
				}
				continue
			}
			fieldValue.SetString(text)
			continue
		}

		attrs, ok := data.Attributes[name]
		if !ok {
			if hasOption(opts, "required") {
				return fmt.Errorf("required attribute block %s not found", name)
			}
			continue
		}
		if err := setBlock(fieldValue, attrs); err != nil {
			return fmt.Errorf("block %s: %v", name, err)
		}
	}

	return nil
}

// UnmarshalAttributes decodes one attribute block into the struct pointed to by v.
func UnmarshalAttributes(attrs Attributes, v any) error {
	elem, err := structTarget(v)
	if err != nil {
		return err
	}
	return unmarshalStruct(attrs, elem)
}

func structTarget(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("unmarshal target must be a non-nil pointer")
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("unmarshal target must be a pointer to struct")
	}
	return elem, nil
}

// setBlock stores an attribute block into a struct, *struct or string map field.
func setBlock(field reflect.Value, attrs Attributes) error {
	switch field.Kind() {
	case reflect.Struct:
		return unmarshalStruct(attrs, field)
	case reflect.Ptr:
		if field.Type().Elem().Kind() != reflect.Struct {
			return fmt.Errorf("unsupported field type: %s", field.Type())
		}
		ptr := reflect.New(field.Type().Elem())
		if err := unmarshalStruct(attrs, ptr.Elem()); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	case reflect.Map:
		if field.Type().Key().Kind() != reflect.String || field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported map type: %s", field.Type())
		}
		m := reflect.MakeMapWithSize(field.Type(), len(attrs))
		for k, val := range attrs {
			m.SetMapIndex(reflect.ValueOf(k).Convert(field.Type().Key()), reflect.ValueOf(val).Convert(field.Type().Elem()))
		}
		field.Set(m)
		return nil
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
}

// unmarshalStruct unmarshals attribute pairs into a struct value
func unmarshalStruct(attrs Attributes, v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Skip unexported fields
		if !fieldValue.CanSet() {
			continue
		}

		key, opts, skip := fieldName(field)
		if skip {
			continue
		}

		value, ok := attrs[key]
		if !ok {
			if hasOption(opts, "required") {
				return fmt.Errorf("required attribute %s not found", key)
			}
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("field %s: %v", field.Name, err)
		}
	}

	return nil
}

// setField converts an attribute value into the field's kind. An empty
// declaration sets a bool to true and leaves other kinds at their zero value.
func setField(field reflect.Value, value string) error {
	if field.Kind() == reflect.Bool {
		return setBool(field, value)
	}
	if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Bool {
		ptr := reflect.New(field.Type().Elem())
		if err := setBool(ptr.Elem(), value); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}
	if value == "" {
		return nil
	}

	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("cannot parse as duration: %v", err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse as int: %v", err)
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse as uint: %v", err)
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse as float: %v", err)
		}
		field.SetFloat(f)
	case reflect.Ptr:
		ptr := reflect.New(field.Type().Elem())
		if err := setField(ptr.Elem(), value); err != nil {
			return err
		}
		field.Set(ptr)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

func setBool(field reflect.Value, value string) error {
	if value == "" {
		field.SetBool(true)
		return nil
	}
	b, err := parseBool(value)
	if err != nil {
		return fmt.Errorf("cannot parse as bool: %v", err)
	}
	field.SetBool(b)
	return nil
}

// Helper functions

func fieldName(field reflect.StructField) (string, []string, bool) {
	tag := field.Tag.Get("bmx")
	if tag == "-" {
		return "", nil, true
	}
	name, opts := parseTag(tag)
	if name == "" {
		name = strings.ToLower(field.Name)
	}
	return name, opts, false
}

func parseTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}

func hasOption(opts []string, option string) bool {
	for _, opt := range opts {
		if opt == option {
			return true
		}
	}
	return false
}

func parseBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value: %s", s)
	}
}
