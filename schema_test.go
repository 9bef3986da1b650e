package bento

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleSchema = `
components:
  - name: Position
    fields:
      - {name: x, type: number}
      - {name: y, type: number}
  - name: Tagged
    fields:
      - {name: label, type: string, default: unnamed}
      - {name: active, type: boolean, default: true}
  - name: Lifetime
    system_state: true
    fields:
      - {name: remaining, type: number, default: 5}
`

// go test -run ^TestRegisterSchema$ . -count 1
func TestRegisterSchema(t *testing.T) {
	ResetGlobalRegistry()
	w := NewWorld(4)

	f, err := ParseSchema([]byte(sampleSchema))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.RegisterSchema(f); err != nil {
		t.Fatal(err)
	}

	pos := w.ComponentType("Position")
	if pos == nil {
		t.Fatal("Position must be registered")
	}
	if pos.IsSystemState() {
		t.Error("Position must not be system-state")
	}
	life := w.ComponentType("Lifetime")
	if life == nil || !life.IsSystemState() {
		t.Fatal("Lifetime must be registered as system-state")
	}

	e := w.CreateEntity()
	c := e.AddComponent(w.ComponentType("Tagged"), nil)
	if c.String("label") != "unnamed" {
		t.Errorf("Expected schema default 'unnamed', got %q", c.String("label"))
	}
	if !c.Bool("active") {
		t.Error("Expected schema default true for active")
	}

	lc := e.AddComponent(life, nil)
	if lc.Float("remaining") != 5 {
		t.Errorf("Expected integer default normalized to 5.0, got %v", lc.Float("remaining"))
	}
}

// go test -run ^TestRegisterSchemaFile$ . -count 1
func TestRegisterSchemaFile(t *testing.T) {
	ResetGlobalRegistry()
	w := NewWorld(4)

	path := filepath.Join(t.TempDir(), "components.yaml")
	if err := os.WriteFile(path, []byte(sampleSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.RegisterSchemaFile(path); err != nil {
		t.Fatal(err)
	}
	if w.ComponentType("Position") == nil {
		t.Fatal("Schema file types must be registered")
	}

	if err := w.RegisterSchemaFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected error for a missing schema file")
	}
}

// go test -run ^TestSchemaUnknownPropType$ . -count 1
func TestSchemaUnknownPropType(t *testing.T) {
	ResetGlobalRegistry()
	w := NewWorld(4)

	f, err := ParseSchema([]byte(`
components:
  - name: Broken
    fields:
      - {name: v, type: quaternion}
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.RegisterSchema(f); !errors.Is(err, ErrUnknownPropType) {
		t.Fatalf("Expected ErrUnknownPropType, got %v", err)
	}
}

// go test -run ^TestSchemaDefaultTypeMismatch$ . -count 1
func TestSchemaDefaultTypeMismatch(t *testing.T) {
	ResetGlobalRegistry()
	w := NewWorld(4)

	f, err := ParseSchema([]byte(`
components:
  - name: Broken
    fields:
      - {name: v, type: number, default: soon}
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.RegisterSchema(f); !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("Expected ErrInvalidSchema, got %v", err)
	}
}

// go test -run ^TestSchemaMalformedDocument$ . -count 1
func TestSchemaMalformedDocument(t *testing.T) {
	if _, err := ParseSchema([]byte("components: {not a list")); err == nil {
		t.Fatal("Expected parse error for malformed YAML")
	}
}
