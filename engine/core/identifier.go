package core

import "fmt"

// Identifiers hands out small integer ids and recycles released ones.
// Id 0 is never issued so callers can use it as "none".
type Identifiers struct {
	owners []interface{}
}

func NewIdentifiers(capacity int) *Identifiers {
	// slot 0 is reserved
	return &Identifiers{owners: make([]interface{}, 1, capacity+1)}
}

// Acquire returns the lowest free id and records owner against it.
func (ids *Identifiers) Acquire(owner interface{}) uint32 {
	length := uint32(len(ids.owners))
	for i := uint32(1); i < length; i++ {
		// Existing free spot. Take it.
		if ids.owners[i] == nil {
			ids.owners[i] = owner
			return i
		}
	}

	// No free slot, grow by one. The new id is length.
	ids.owners = append(ids.owners, owner)
	return length
}

// Owner returns what was recorded for id, or nil when the id is free.
func (ids *Identifiers) Owner(id uint32) interface{} {
	if id == 0 || id >= uint32(len(ids.owners)) {
		return nil
	}
	return ids.owners[id]
}

// Release makes id available again.
func (ids *Identifiers) Release(id uint32) error {
	length := uint32(len(ids.owners))
	if id == 0 || id >= length {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d). Nothing was done", id, length-1)
	}
	if ids.owners[id] == nil {
		return fmt.Errorf("identifier release: id '%d' is not in use. Nothing was done", id)
	}
	ids.owners[id] = nil
	return nil
}

// InUse reports how many ids are currently held.
func (ids *Identifiers) InUse() int {
	n := 0
	for _, o := range ids.owners[1:] {
		if o != nil {
			n++
		}
	}
	return n
}
