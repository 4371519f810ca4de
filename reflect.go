package groqqy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// NewToolFromFunc builds a [Tool] by introspecting a plain function.
//
// fn must have the shape
//
//	func(ctx context.Context, in In) (string, error)
//
// where In is a struct whose exported fields are the tool's
// parameters. Supported field types are string, bool, and the numeric
// kinds (integers map to JSON Schema "integer", floats to "number").
// A field of any other type is a construction error, not a runtime
// one.
//
// Struct tags refine the generated schema:
//
//	Path  string `json:"path" desc:"File path to read"`
//	Limit int    `json:"limit" default:"20"`
//
// Fields are required unless they carry a default or the json tag's
// omitempty option. The resulting tool transforms the model's raw
// arguments into In via JSON round-trip before calling fn.
func NewToolFromFunc(name, description string, fn any) (Tool, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return nil, errors.New("fn is not a function")
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 2 || fnType.In(0) != reflect.TypeOf((*context.Context)(nil)).Elem() {
		return nil, fmt.Errorf(
			"tool %q: fn must be func(context.Context, In) (string, error)", name)
	}
	if fnType.NumOut() != 2 ||
		fnType.Out(0).Kind() != reflect.String ||
		fnType.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
		return nil, fmt.Errorf(
			"tool %q: fn must return (string, error)", name)
	}

	inType := fnType.In(1)
	if inType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool %q: input type %s is not a struct", name, inType)
	}

	paramSchema, err := buildParamSchema(name, inType)
	if err != nil {
		return nil, err
	}

	invoke := func(ctx context.Context, args map[string]any) (string, error) {
		argsJSON, err := json.Marshal(args)
		if err != nil {
			return "", fmt.Errorf("failed to marshal args: %w", err)
		}
		inVal := reflect.New(inType)
		if err := json.Unmarshal(argsJSON, inVal.Interface()); err != nil {
			return "", fmt.Errorf("failed to unmarshal args into input type: %w", err)
		}
		results := fnVal.Call([]reflect.Value{
			reflect.ValueOf(ctx),
			inVal.Elem(),
		})
		if !results[1].IsNil() {
			return "", results[1].Interface().(error)
		}
		return results[0].String(), nil
	}

	return NewToolFunc(name, description, paramSchema, invoke), nil
}

// buildParamSchema generates a JSON Schema object from the exported
// fields of a struct type.
func buildParamSchema(toolName string, structType reflect.Type) (map[string]any, error) {
	properties := make(map[string]any)
	var required []string

	for i := range structType.NumField() {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		paramName, omitempty := fieldParamName(field)
		jsonType, err := fieldJSONType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("tool %q, parameter %q: %w", toolName, paramName, err)
		}

		prop := map[string]any{"type": jsonType}
		if desc := field.Tag.Get("desc"); desc != "" {
			prop["description"] = desc
		}

		hasDefault := false
		if raw, ok := field.Tag.Lookup("default"); ok {
			def, err := parseDefault(raw, jsonType)
			if err != nil {
				return nil, fmt.Errorf("tool %q, parameter %q: %w", toolName, paramName, err)
			}
			prop["default"] = def
			hasDefault = true
		}

		properties[paramName] = prop
		if !omitempty && !hasDefault {
			required = append(required, paramName)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema, nil
}

// fieldParamName resolves the parameter name from the json tag,
// falling back to the lower-cased field name. The second return
// reports whether the tag carried the omitempty option.
func fieldParamName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return strings.ToLower(field.Name), false
	}
	name := tag
	omitempty := false
	if comma := strings.IndexByte(tag, ','); comma >= 0 {
		name = tag[:comma]
		omitempty = strings.Contains(tag[comma+1:], "omitempty")
	}
	if name == "" {
		name = strings.ToLower(field.Name)
	}
	return name, omitempty
}

// fieldJSONType maps a Go field type to its JSON Schema primitive.
// Only primitives are accepted; anything else is rejected so the
// failure surfaces at registration time.
func fieldJSONType(t reflect.Type) (string, error) {
	switch t.Kind() {
	case reflect.String:
		return "string", nil
	case reflect.Bool:
		return "boolean", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer", nil
	case reflect.Float32, reflect.Float64:
		return "number", nil
	default:
		return "", fmt.Errorf("unsupported parameter type %s", t)
	}
}

// parseDefault converts a struct-tag default literal to the value type
// matching the parameter's JSON type.
func parseDefault(raw, jsonType string) (any, error) {
	switch jsonType {
	case "string":
		return raw, nil
	case "boolean":
		return strconv.ParseBool(raw)
	case "integer":
		return strconv.Atoi(raw)
	case "number":
		return strconv.ParseFloat(raw, 64)
	}
	return nil, fmt.Errorf("no default support for type %s", jsonType)
}
