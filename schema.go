package bento

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchemaFile is a declarative component-type definition document:
//
//	components:
//	  - name: Position
//	    fields:
//	      - {name: x, type: number}
//	      - {name: y, type: number}
//	  - name: Lifetime
//	    system_state: true
//	    fields:
//	      - {name: remaining, type: number, default: 5}
type SchemaFile struct {
	Components []ComponentSchema `yaml:"components"`
}

// ComponentSchema declares one component type.
type ComponentSchema struct {
	Name        string        `yaml:"name"`
	SystemState bool          `yaml:"system_state"`
	Fields      []FieldSchema `yaml:"fields"`
}

// FieldSchema declares one field. Type must name a built-in prop type;
// Default, when set, overrides the prop type's default.
type FieldSchema struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default any    `yaml:"default"`
}

// ParseSchema decodes a schema document.
func ParseSchema(data []byte) (*SchemaFile, error) {
	var f SchemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse component schema: %w", err)
	}
	return &f, nil
}

// componentType resolves the schema into a ComponentType.
func (self ComponentSchema) componentType() (*ComponentType, error) {
	fields := make([]FieldSpec, 0, len(self.Fields))
	for _, fs := range self.Fields {
		pt, ok := PropTypeByName(fs.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s references %q", ErrUnknownPropType, self.Name, fs.Name, fs.Type)
		}
		def, err := normalizeDefault(pt, fs.Default)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", self.Name, fs.Name, err)
		}
		fields = append(fields, FieldSpec{Name: fs.Name, Type: pt, Default: def})
	}
	if self.SystemState {
		return NewSystemStateComponentType(self.Name, fields...), nil
	}
	return NewComponentType(self.Name, fields...), nil
}

// normalizeDefault coerces a decoded YAML default into the value shape the
// prop type stores. YAML integers become float64 for number fields.
func normalizeDefault(pt *PropType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch pt {
	case Number:
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		}
		return nil, fmt.Errorf("%w: number default is %T", ErrInvalidSchema, v)
	case Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("%w: boolean default is %T", ErrInvalidSchema, v)
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("%w: string default is %T", ErrInvalidSchema, v)
	case Array:
		if a, ok := v.([]any); ok {
			return a, nil
		}
		return nil, fmt.Errorf("%w: array default is %T", ErrInvalidSchema, v)
	default:
		// Object and JSON accept whatever the document carries.
		return v, nil
	}
}

// RegisterSchema registers every component type the document declares,
// stopping at the first invalid one. Registered types are retrievable via
// World.ComponentType by name.
func (self *World) RegisterSchema(file *SchemaFile) error {
	for _, cs := range file.Components {
		t, err := cs.componentType()
		if err != nil {
			return err
		}
		if err := self.RegisterComponent(t); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSchemaFile loads and registers a schema document from path.
func (self *World) RegisterSchemaFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read component schema %s: %w", path, err)
	}
	f, err := ParseSchema(data)
	if err != nil {
		return err
	}
	return self.RegisterSchema(f)
}
