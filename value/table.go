package value

// Table is an open-addressed hash set of interned string Objects, keyed
// by (hash, length, content). It uses linear probing with tombstones for
// deletion and grows at a 0.75 max load factor, mirroring the clox
// hash_table.c this module is grounded on, specialized to a set (the
// "value" at each slot is always the key string object itself).
type Table struct {
	entries  []*Object
	occupied int // live entries + tombstones, for the load-factor check
	live     int // live entries only
}

const maxLoad = 0.75

// tombstone marks a deleted slot that must still be probed past, not
// treated as empty.
var tombstone = &Object{}

func (t *Table) findSlot(entries []*Object, capacity int, chars string, hash uint32) int {
	index := int(hash) % capacity
	tombstoneIndex := -1

	for {
		entry := entries[index]
		switch {
		case entry == nil:
			if tombstoneIndex != -1 {
				return tombstoneIndex
			}
			return index
		case entry == tombstone:
			if tombstoneIndex == -1 {
				tombstoneIndex = index
			}
		case entry.Str.Hash == hash && entry.Str.Length == len(chars) && entry.Str.Chars == chars:
			return index
		}
		index = (index + 1) % capacity
	}
}

func (t *Table) adjustCapacity(capacity int) {
	entries := make([]*Object, capacity)

	t.live = 0
	for _, old := range t.entries {
		if old == nil || old == tombstone {
			continue
		}
		index := t.findSlot(entries, capacity, old.Str.Chars, old.Str.Hash)
		entries[index] = old
		t.live++
	}

	t.entries = entries
	t.occupied = t.live
}

// Find returns the interned Object with the given string content and
// hash, or nil if none is interned yet.
func (t *Table) Find(chars string, hash uint32) *Object {
	if t.live == 0 {
		return nil
	}
	index := t.findSlot(t.entries, len(t.entries), chars, hash)
	entry := t.entries[index]
	if entry == nil || entry == tombstone {
		return nil
	}
	return entry
}

// Set inserts obj into the table, growing it first if the 0.75 load
// factor would be exceeded. Set assumes obj's string is not already
// interned; callers should Find first (Heap.Intern does exactly that).
func (t *Table) Set(obj *Object) {
	if float64(t.occupied+1) > float64(len(t.entries))*maxLoad {
		capacity := growCapacity(len(t.entries))
		t.adjustCapacity(capacity)
	}

	index := t.findSlot(t.entries, len(t.entries), obj.Str.Chars, obj.Str.Hash)
	isNewSlot := t.entries[index] == nil
	t.entries[index] = obj
	t.live++
	if isNewSlot {
		t.occupied++
	}
}

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}
