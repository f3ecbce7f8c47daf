// Package snapshot turns loosely typed resume documents into the structured
// record the scorer consumes.
package snapshot

import (
	"bytes"
	"encoding/json"
	"reflect"

	"atsscore/internal/errors"
	"atsscore/internal/types"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Decode converts a raw document into a ResumeSnapshot. Type mismatches
// degrade to empty values; Decode never fails.
func Decode(raw map[string]any) types.ResumeSnapshot {
	var out types.ResumeSnapshot
	if raw == nil {
		return out
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(lenientHook),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &out,
	})
	if err != nil {
		return types.ResumeSnapshot{}
	}
	if err := decoder.Decode(raw); err != nil {
		// Partial results are still usable; the hook should make this unreachable.
		return out
	}
	return out
}

// lenientHook rewrites values whose shape does not fit the target field.
func lenientHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.String:
		switch from.Kind() {
		case reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return data, nil
		default:
			return "", nil
		}
	case reflect.Slice:
		if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
			return []any{}, nil
		}
	case reflect.Struct:
		if from.Kind() != reflect.Map && from.Kind() != reflect.Struct {
			return map[string]any{}, nil
		}
	}
	return data, nil
}

// Parse reads a JSON or YAML document. The only failure is a document whose
// top level is not an object.
func Parse(data []byte) (types.ResumeSnapshot, map[string]any, error) {
	raw, err := ParseRaw(data)
	if err != nil {
		return types.ResumeSnapshot{}, nil, err
	}
	return Decode(raw), raw, nil
}

// ParseRaw decodes a JSON or YAML document into a generic object.
func ParseRaw(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidResume, "resume document is empty", nil)
	}

	var doc any
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat, "resume is not valid JSON", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat, "resume is not valid YAML", err)
	}

	raw, ok := asObject(doc)
	if !ok {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidResume, "resume must be an object", nil).
			WithContext("got", describe(doc))
	}
	return raw, nil
}

// asObject accepts JSON objects and YAML mappings.
func asObject(doc any) (map[string]any, bool) {
	switch v := doc.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).Kind().String()
}
