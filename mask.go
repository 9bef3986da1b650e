package bento

const (
	bitsPerWord = 64
	maskWords   = MaxComponentTypes / bitsPerWord
)

// maskType is a bitmask used to represent a set of component types.
type maskType [maskWords]uint64

// has checks if the mask has a specific component ID.
func (self maskType) has(id ComponentID) bool {
	word := int(id) / bitsPerWord
	bit := int(id) % bitsPerWord
	return (self[word] & (1 << bit)) != 0
}

// isZero reports whether no bits are set.
func (self maskType) isZero() bool {
	for i := 0; i < maskWords; i++ {
		if self[i] != 0 {
			return false
		}
	}
	return true
}

// setMask adds a component ID to the mask.
func setMask(m maskType, id ComponentID) maskType {
	word := int(id) / bitsPerWord
	bit := int(id) % bitsPerWord
	nm := m
	nm[word] |= (1 << bit)
	return nm
}

// unsetMask removes a component ID from the mask.
func unsetMask(m maskType, id ComponentID) maskType {
	word := int(id) / bitsPerWord
	bit := int(id) % bitsPerWord
	nm := m
	nm[word] &^= (1 << bit)
	return nm
}

// includesAll checks if a mask contains all the bits of another mask.
func includesAll(m, include maskType) bool {
	for i := 0; i < maskWords; i++ {
		if (m[i] & include[i]) != include[i] {
			return false
		}
	}
	return true
}

// intersects checks if a mask has any bits in common with another mask.
func intersects(m, exclude maskType) bool {
	for i := 0; i < maskWords; i++ {
		if (m[i] & exclude[i]) != 0 {
			return true
		}
	}
	return false
}
