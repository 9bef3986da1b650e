// Package bento implements a schema-driven Entity Component System runtime
// for Go.
//
// Features:
// - Entities as recyclable objects with one-shot integer ids.
// - Schema-driven component types with per-field clone/copy semantics.
// - Cached queries over required/excluded component masks, maintained
//   incrementally on every attach and detach.
// - Two-phase deferred removal: components and entities disappear from
//   queries immediately but are recycled only at the per-tick flush.
// - Free-list pooling for entities and component instances.
// - Typed event bus for lifecycle and reactive change notification.
package bento

import "errors"

// MaxComponentTypes is the maximum number of unique component types that can
// be registered in a World. This value is fixed at 256.
const MaxComponentTypes = 256

// ComponentID is the stable per-world slot index of a registered component
// type. IDs are assigned in registration order and never reused.
type ComponentID uint8

var (
	// ErrInvalidSchema reports a component schema that is missing a field
	// name, a prop type, or a prop type's default/clone/copy metadata.
	ErrInvalidSchema = errors.New("bento: invalid component schema")
	// ErrTooManyComponentTypes reports registration beyond MaxComponentTypes.
	ErrTooManyComponentTypes = errors.New("bento: too many component types")
	// ErrUnknownPropType reports a schema field referencing a prop type name
	// that is not a built-in.
	ErrUnknownPropType = errors.New("bento: unknown prop type")
)
