package arena

import "strings"

// Trashing selects when the manager overwrites memory with a poison byte.
// Flags combine with bitwise OR; the zero value disables trashing.
type Trashing uint8

const (
	// TrashNone never poisons memory.
	TrashNone Trashing = 0
	// TrashOnInit fills the whole buffer with 0xCD at construction.
	TrashOnInit Trashing = 1 << 0
	// TrashOnAlloc fills freshly allocated payload with 0xAA.
	TrashOnAlloc Trashing = 1 << 1
	// TrashOnFree fills freshly freed (and merged) payload with 0xDD.
	TrashOnFree Trashing = 1 << 2
	// TrashAll enables every trigger.
	TrashAll = TrashOnInit | TrashOnAlloc | TrashOnFree
)

// Poison bytes written by each trigger.
const (
	PoisonInit  byte = 0xCD
	PoisonAlloc byte = 0xAA
	PoisonFree  byte = 0xDD
	// PoisonUnset is reported for TrashNone and TrashAll, which have no
	// single trigger of their own.
	PoisonUnset byte = 0xFF
)

// PoisonByte returns the poison byte associated with a single trigger.
// Combinations and TrashNone report PoisonUnset.
func PoisonByte(t Trashing) byte {
	switch t {
	case TrashOnInit:
		return PoisonInit
	case TrashOnAlloc:
		return PoisonAlloc
	case TrashOnFree:
		return PoisonFree
	default:
		return PoisonUnset
	}
}

// Has reports whether every flag in flag is set in t.
func (t Trashing) Has(flag Trashing) bool {
	return flag != 0 && t&flag == flag
}

func (t Trashing) String() string {
	if t == TrashNone {
		return "none"
	}
	var parts []string
	if t.Has(TrashOnInit) {
		parts = append(parts, "init")
	}
	if t.Has(TrashOnAlloc) {
		parts = append(parts, "alloc")
	}
	if t.Has(TrashOnFree) {
		parts = append(parts, "free")
	}
	if rest := t &^ TrashAll; rest != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}

// poison fills b with the byte for trigger when t enables it.
func (t Trashing) poison(trigger Trashing, b []byte) {
	if !t.Has(trigger) || len(b) == 0 {
		return
	}
	v := PoisonByte(trigger)
	for i := range b {
		b[i] = v
	}
}
