package parsing

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dolittle-tools/common/internal/dependencies"
)

// Field names of a raw dependency descriptor.
const (
	FieldDescription   = "description"
	FieldType          = "type"
	FieldRules         = "rules"
	FieldValue         = "value"
	FieldDiscoverType  = "discoverType"
	FieldWithNamespace = "withNamespace"
	FieldMilestone     = "milestone"
	FieldFileMatch     = "fileMatch"
	FieldContentMatch  = "contentMatch"
	FieldFromArea      = "fromArea"
	FieldUserInputType = "userInputType"
	FieldPromptMessage = "promptMessage"
	FieldChoices       = "choices"
	FieldCustomInput   = "customInput"
	FieldOptional      = "optional"
	FieldDefault       = "default"
)

// Raw is one undecoded dependency descriptor.
type Raw struct {
	Name   string
	Fields map[string]json.RawMessage
}

// DecodeDependencies decodes a JSON object mapping dependency names to
// descriptors, keeping declaration order.
func DecodeDependencies(data []byte) ([]Raw, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading dependencies: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("dependencies must be an object, got %v", tok)
	}

	var out []Raw
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading dependency name: %w", err)
		}
		name, _ := tok.(string)
		if seen[name] {
			return nil, dependencies.InvalidField(name, "name", "declared more than once")
		}
		seen[name] = true

		var fields map[string]json.RawMessage
		if err := dec.Decode(&fields); err != nil {
			return nil, fmt.Errorf("decoding dependency %q: %w", name, err)
		}
		if fields == nil {
			fields = map[string]json.RawMessage{}
		}
		out = append(out, Raw{Name: name, Fields: fields})
	}
	return out, nil
}

// NewRaw builds a descriptor from already decoded values.
func NewRaw(name string, fields map[string]any) (Raw, error) {
	raw := Raw{Name: name, Fields: make(map[string]json.RawMessage, len(fields))}
	for k, v := range fields {
		data, err := json.Marshal(v)
		if err != nil {
			return Raw{}, fmt.Errorf("encoding field %q of %q: %w", k, name, err)
		}
		raw.Fields[k] = data
	}
	return raw, nil
}

// Has reports whether field is present and not null.
func (r Raw) Has(field string) bool {
	v, ok := r.Fields[field]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// String decodes a string field. Absent fields decode to "".
func (r Raw) String(field string) (string, error) {
	var s string
	if err := r.decode(field, &s, "a string"); err != nil {
		return "", err
	}
	return s, nil
}

// Bool decodes a boolean field. Absent fields decode to false.
func (r Raw) Bool(field string) (bool, error) {
	var b bool
	if err := r.decode(field, &b, "a boolean"); err != nil {
		return false, err
	}
	return b, nil
}

// Strings decodes a string array field.
func (r Raw) Strings(field string) ([]string, error) {
	var ss []string
	if err := r.decode(field, &ss, "an array of strings"); err != nil {
		return nil, err
	}
	return ss, nil
}

// Any decodes a field of any JSON type.
func (r Raw) Any(field string) (any, error) {
	var v any
	if err := r.decode(field, &v, "JSON"); err != nil {
		return nil, err
	}
	return v, nil
}

// Choices decodes the choices field. Each element is either a string or an
// object with name and value.
func (r Raw) Choices() ([]dependencies.Choice, error) {
	if !r.Has(FieldChoices) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(r.Fields[FieldChoices], &items); err != nil {
		return nil, dependencies.InvalidField(r.Name, FieldChoices, "expected an array")
	}
	choices := make([]dependencies.Choice, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			choices = append(choices, dependencies.Choice{Name: s, Value: s})
			continue
		}
		var c dependencies.Choice
		if err := json.Unmarshal(item, &c); err != nil || c.Name == "" {
			return nil, dependencies.InvalidField(r.Name, FieldChoices, fmt.Sprintf("choice %d must be a string or an object with a name", i))
		}
		if c.Value == nil {
			c.Value = c.Name
		}
		choices = append(choices, c)
	}
	return choices, nil
}

func (r Raw) decode(field string, dst any, want string) error {
	if !r.Has(field) {
		return nil
	}
	if err := json.Unmarshal(r.Fields[field], dst); err != nil {
		return dependencies.InvalidField(r.Name, field, "expected "+want)
	}
	return nil
}
