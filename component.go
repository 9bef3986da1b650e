package bento

import "fmt"

// FieldSpec declares one schema field of a component type. Field order is
// significant: it defines the slot each value occupies in an instance.
type FieldSpec struct {
	// Name is the field's key within the component.
	Name string
	// Type supplies default/clone/copy semantics for the field.
	Type *PropType
	// Default overrides Type.Default when non-nil.
	Default any
}

// defaultValue returns the value a reset field receives.
func (self FieldSpec) defaultValue() any {
	if self.Default != nil {
		return self.Type.Clone(self.Default)
	}
	return self.Type.Clone(self.Type.Default)
}

// ComponentType is the registered identity of one kind of component. It is
// stateless: all instance data lives in Component values produced from it.
type ComponentType struct {
	name        string
	id          ComponentID
	idAssigned  bool
	fields      []FieldSpec
	fieldIndex  map[string]int
	systemState bool
}

// NewComponentType declares a component type with the given schema. The type
// carries no identity until registered with a World.
func NewComponentType(name string, fields ...FieldSpec) *ComponentType {
	t := &ComponentType{name: name, fields: fields}
	t.buildFieldIndex()
	return t
}

// NewSystemStateComponentType declares a system-state component type: an
// entity holding one survives logical death until the component is removed
// explicitly, delaying final disposal for cleanup workflows.
func NewSystemStateComponentType(name string, fields ...FieldSpec) *ComponentType {
	t := &ComponentType{name: name, fields: fields, systemState: true}
	t.buildFieldIndex()
	return t
}

func (self *ComponentType) buildFieldIndex() {
	self.fieldIndex = make(map[string]int, len(self.fields))
	for i, f := range self.fields {
		self.fieldIndex[f.Name] = i
	}
}

// Name returns the type's unique name.
func (self *ComponentType) Name() string { return self.name }

// ID returns the slot index assigned at registration.
func (self *ComponentType) ID() ComponentID { return self.id }

// Fields returns the declared schema in field order.
func (self *ComponentType) Fields() []FieldSpec { return self.fields }

// IsSystemState reports whether the type delays entity disposal.
func (self *ComponentType) IsSystemState() bool { return self.systemState }

// validate checks schema completeness: every field needs a name, a prop type
// and complete clone/copy metadata. Registration fails fast on violations.
func (self *ComponentType) validate() error {
	if self.name == "" {
		return fmt.Errorf("%w: component type without a name", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(self.fields))
	for _, f := range self.fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed field", ErrInvalidSchema, self.name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %s declares field %q twice", ErrInvalidSchema, self.name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.Type == nil {
			return fmt.Errorf("%w: %s.%s has no prop type", ErrInvalidSchema, self.name, f.Name)
		}
		if !f.Type.valid() {
			return fmt.Errorf("%w: %s.%s prop type %q lacks clone/copy", ErrInvalidSchema, self.name, f.Name, f.Type.Name)
		}
	}
	return nil
}

// Component is one instance of a registered type, owned by at most one
// entity while attached. Values are stored slot-indexed in field order.
type Component struct {
	typ    *ComponentType
	values []any
	pool   *Pool[*Component] // nil for unpooled types
}

// newComponent builds a reset instance of t.
func newComponent(t *ComponentType) *Component {
	c := &Component{typ: t, values: make([]any, len(t.fields))}
	c.Reset()
	return c
}

// Type returns the component's registered type.
func (self *Component) Type() *ComponentType { return self.typ }

// Get returns the value of the named field, or nil if the schema does not
// declare it.
func (self *Component) Get(field string) any {
	i, ok := self.typ.fieldIndex[field]
	if !ok {
		return nil
	}
	return self.values[i]
}

// Set stores v into the named field. Unknown fields are ignored.
func (self *Component) Set(field string, v any) {
	if i, ok := self.typ.fieldIndex[field]; ok {
		self.values[i] = v
	}
}

// Float returns the named field as a float64, or 0 for other kinds.
func (self *Component) Float(field string) float64 {
	f, _ := self.Get(field).(float64)
	return f
}

// Bool returns the named field as a bool, or false for other kinds.
func (self *Component) Bool(field string) bool {
	b, _ := self.Get(field).(bool)
	return b
}

// String returns the named field as a string, or "" for other kinds.
func (self *Component) String(field string) string {
	s, _ := self.Get(field).(string)
	return s
}

// Reset restores every field to its schema default.
func (self *Component) Reset() {
	for i, f := range self.typ.fields {
		self.values[i] = f.defaultValue()
	}
}

// Copy overwrites this instance field by field from src, which must be of
// the same type. Each field goes through its prop type's Copy, so Array
// fields keep their backing store and Object fields alias the source.
func (self *Component) Copy(src *Component) *Component {
	if src == nil || src.typ != self.typ {
		return self
	}
	for i, f := range self.typ.fields {
		self.values[i] = f.Type.Copy(src.values[i], self.values[i])
	}
	return self
}

// CopyValues overwrites the named fields from values via each field's prop
// type Copy. Unknown names are ignored.
func (self *Component) CopyValues(values map[string]any) *Component {
	for name, v := range values {
		if i, ok := self.typ.fieldIndex[name]; ok {
			self.values[i] = self.typ.fields[i].Type.Copy(v, self.values[i])
		}
	}
	return self
}

// Clone produces an independent instance with the same field values,
// drawing from the type's pool when one exists.
func (self *Component) Clone() *Component {
	var c *Component
	if self.pool != nil {
		c = self.pool.Acquire()
	} else {
		c = newComponent(self.typ)
	}
	for i, f := range self.typ.fields {
		c.values[i] = f.Type.Clone(self.values[i])
	}
	return c
}

// Dispose resets the instance and returns it to its pool. Unpooled
// instances are simply reset and left to the garbage collector.
func (self *Component) Dispose() {
	self.Reset()
	if self.pool != nil {
		self.pool.Release(self)
	}
}
